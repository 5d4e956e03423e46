package store

import (
	"context"
	"errors"

	"github.com/adityarahman/gighub_be/internal/models"
)

// Sentinel errors shared by every implementation. Handlers map these to
// HTTP statuses (404, 400, 409, 402).
var (
	ErrNotFound          = errors.New("store: record not found")
	ErrInvalidID         = errors.New("store: invalid id")
	ErrDuplicate         = errors.New("store: duplicate record")
	ErrInsufficientFunds = errors.New("store: insufficient funds")
)

// ServiceFilter narrows public and owner listings.
type ServiceFilter struct {
	Query        string
	Category     string
	MinPrice     int64
	MaxPrice     int64
	Sort         string // latest | price_low | price_high
	Page         int
	Limit        int
	FreelancerID string
	Status       models.ServiceStatus // empty means any
}

// ServiceSummary is a listing row with its review aggregates.
type ServiceSummary struct {
	Service     models.Service
	SellerName  string
	AvgRating   float64
	ReviewCount int64
	Sold        int64
}

type ServiceStats struct {
	AvgRating   float64
	ReviewCount int64
	Sold        int64
}

type JobFilter struct {
	Query      string
	Category   string
	MinBudget  int64
	MaxBudget  int64
	Sort       string
	Page       int
	Limit      int
	EmployerID string
	Status     models.JobStatus
}

// OrderSide selects which end of an order a user is on.
type OrderSide string

const (
	OrderSideAny    OrderSide = ""
	OrderSideBuyer  OrderSide = "buyer"
	OrderSideSeller OrderSide = "seller"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	List(ctx context.Context, page, limit int) ([]models.User, int64, error)
}

type ServiceStore interface {
	Create(ctx context.Context, s *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ServiceFilter) ([]ServiceSummary, int64, error)
	Categories(ctx context.Context) ([]string, error)
	Stats(ctx context.Context, serviceID string) (ServiceStats, error)
	Count(ctx context.Context) (int64, error)
}

type JobStore interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, j *models.Job) error
	List(ctx context.Context, f JobFilter) ([]models.Job, int64, error)
	Count(ctx context.Context) (int64, error)
}

type ApplicationStore interface {
	// Create returns ErrDuplicate when the freelancer already applied to the job.
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	Update(ctx context.Context, a *models.Application) error
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
	ListByFreelancer(ctx context.Context, freelancerID string) ([]models.Application, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	ListByUser(ctx context.Context, userID string, side OrderSide, status models.OrderStatus, page, limit int) ([]models.Order, int64, error)
	CountBySeller(ctx context.Context, sellerID string, statuses []models.OrderStatus) (int64, error)
	SumAmountByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type ReviewStore interface {
	// Create returns ErrDuplicate when the order already has a review.
	Create(ctx context.Context, r *models.Review) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Review, error)
	ListByService(ctx context.Context, serviceID string) ([]models.Review, error)
	SellerRating(ctx context.Context, sellerID string) (avg float64, count int64, err error)
}

type WalletStore interface {
	// Debit removes funds from a user's balance; it never lets the balance
	// go negative and returns ErrInsufficientFunds instead.
	Debit(ctx context.Context, userID string, amount int64, referenceID, description string) error
	Credit(ctx context.Context, userID string, amount int64, trxType models.WalletTrxType, referenceID, description string) error
	ListByUser(ctx context.Context, userID string, page, limit int) ([]models.WalletTransaction, int64, error)
	SumByUserAndType(ctx context.Context, userID string, t models.WalletTrxType) (int64, error)
}

// Stores bundles every entity store behind one seam so handlers can run
// against either the GORM-backed implementation or the in-memory one.
type Stores struct {
	Users        UserStore
	Services     ServiceStore
	Jobs         JobStore
	Applications ApplicationStore
	Orders       OrderStore
	Reviews      ReviewStore
	Wallet       WalletStore
}
