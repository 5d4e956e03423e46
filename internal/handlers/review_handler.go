package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/models"
	"github.com/adityarahman/gighub_be/internal/realtime"
	"github.com/adityarahman/gighub_be/internal/store"
)

type ReviewHandler struct {
	Stores   store.Stores
	Notifier *realtime.Notifier
}

func NewReviewHandler(stores store.Stores, notifier *realtime.Notifier) *ReviewHandler {
	return &ReviewHandler{Stores: stores, Notifier: notifier}
}

type ReviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Create lets the buyer review a completed order, once.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	o, err := h.Stores.Orders.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Order not found")
	}
	if o.BuyerID != uid {
		return fail(c, fiber.StatusForbidden, "Only the buyer can review this order")
	}
	if o.Status != models.OrderCompleted {
		return fail(c, fiber.StatusBadRequest, "Order is not completed yet")
	}

	var req ReviewReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	fieldErrors := FieldErrors{}
	if req.Rating < 1 || req.Rating > 5 {
		fieldErrors["rating"] = append(fieldErrors["rating"], "Rating must be between 1 and 5")
	}
	if len(fieldErrors) > 0 {
		return validationFail(c, fieldErrors)
	}

	r := models.Review{
		OrderID:    o.ID,
		ServiceID:  o.ServiceID,
		ReviewerID: uid,
		SellerID:   o.SellerID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := h.Stores.Reviews.Create(c.Context(), &r); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fail(c, fiber.StatusConflict, "Order already reviewed")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to create review")
	}

	h.Notifier.Notify(c.Context(), realtime.Event{
		UserID: o.SellerID,
		Type:   "review.received",
		Payload: fiber.Map{
			"order_id":   o.ID,
			"service_id": o.ServiceID,
			"rating":     r.Rating,
		},
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Review submitted",
		"data":    r,
	})
}
