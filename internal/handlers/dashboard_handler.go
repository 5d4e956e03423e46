package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/models"
	"github.com/adityarahman/gighub_be/internal/store"
)

type DashboardHandler struct {
	Stores store.Stores
}

func NewDashboardHandler(stores store.Stores) *DashboardHandler {
	return &DashboardHandler{Stores: stores}
}

// Freelancer summarizes the caller's selling activity: orders in flight,
// finished orders, credited earnings and the aggregate rating.
func (h *DashboardHandler) Freelancer(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}
	ctx := c.Context()

	active, err := h.Stores.Orders.CountBySeller(ctx, uid, []models.OrderStatus{
		models.OrderPaid, models.OrderWorking, models.OrderDelivered,
	})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	completed, err := h.Stores.Orders.CountBySeller(ctx, uid, []models.OrderStatus{models.OrderCompleted})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	earnings, err := h.Stores.Wallet.SumByUserAndType(ctx, uid, models.WalletCredit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	avg, count, err := h.Stores.Reviews.SellerRating(ctx, uid)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	return ok(c, fiber.Map{
		"active_orders":    active,
		"completed_orders": completed,
		"total_earnings":   earnings,
		"avg_rating":       avg,
		"review_count":     count,
	})
}
