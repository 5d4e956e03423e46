package models

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"   // created, waiting for payment
	OrderPaid      OrderStatus = "paid"      // wallet debited
	OrderWorking   OrderStatus = "working"   // seller started
	OrderDelivered OrderStatus = "delivered" // seller submitted the result
	OrderCompleted OrderStatus = "completed" // buyer accepted, seller credited
	OrderCancelled OrderStatus = "cancelled" // refunded if already paid
)

// Order is a purchase transaction linking a buyer and a service.
type Order struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderCode string `gorm:"unique;size:10" json:"order_code"`
	ServiceID string `gorm:"type:uuid;not null;index" json:"service_id"`
	BuyerID   string `gorm:"type:uuid;not null;index" json:"buyer_id"`
	SellerID  string `gorm:"type:uuid;not null;index" json:"seller_id"`

	Amount      int64 `gorm:"not null" json:"amount"`
	PlatformFee int64 `json:"platform_fee"`
	NetAmount   int64 `json:"net_amount"` // what the seller receives on completion

	Requirements string `gorm:"type:text" json:"requirements"`

	// Payment metadata
	PaymentMethod string     `gorm:"type:varchar(50)" json:"payment_method"`
	Reference     string     `gorm:"type:varchar(50);index" json:"reference"`
	PaidAt        *time.Time `json:"paid_at"`

	Status OrderStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Buyer   *User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller  *User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.OrderCode == "" {
		o.OrderCode = GenerateOrderCode()
	}
	return
}

// GenerateOrderCode generates a random alphanumeric code
func GenerateOrderCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
