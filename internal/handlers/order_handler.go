package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/models"
	"github.com/adityarahman/gighub_be/internal/realtime"
	"github.com/adityarahman/gighub_be/internal/services/payments"
	"github.com/adityarahman/gighub_be/internal/store"
)

type OrderHandler struct {
	Stores   store.Stores
	Payments *payments.Service
	Notifier *realtime.Notifier
	FeePct   int
}

func NewOrderHandler(stores store.Stores, pay *payments.Service, notifier *realtime.Notifier, feePct int) *OrderHandler {
	return &OrderHandler{Stores: stores, Payments: pay, Notifier: notifier, FeePct: feePct}
}

type CreateOrderReq struct {
	ServiceID    string `json:"service_id"`
	Requirements string `json:"requirements"`
}

// Create places an order for a published service. Ordering your own
// service is rejected. The order starts pending; payment happens on /pay.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	var req CreateOrderReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	svc, err := h.Stores.Services.GetByID(c.Context(), req.ServiceID)
	if err != nil {
		return storeErr(c, err, "Service not found")
	}
	if svc.Status != models.ServicePublished {
		return fail(c, fiber.StatusBadRequest, "Service is not published")
	}
	if svc.FreelancerID == uid {
		return fail(c, fiber.StatusBadRequest, "You cannot order your own service")
	}

	buyer, err := h.Stores.Users.GetByID(c.Context(), uid)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "User not found")
	}
	if buyer.Status == models.UserBlocked {
		return fail(c, fiber.StatusForbidden, "Account is blocked")
	}

	fee := svc.Price * int64(h.FeePct) / 100
	o := models.Order{
		ServiceID:    svc.ID,
		BuyerID:      uid,
		SellerID:     svc.FreelancerID,
		Amount:       svc.Price,
		PlatformFee:  fee,
		NetAmount:    svc.Price - fee,
		Requirements: strings.TrimSpace(req.Requirements),
		Status:       models.OrderPending,
	}

	if err := h.Stores.Orders.Create(c.Context(), &o); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create order")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order created",
		"data": fiber.Map{
			"id":         o.ID,
			"order_code": o.OrderCode,
			"amount":     o.Amount,
			"status":     o.Status,
		},
	})
}

type PayOrderReq struct {
	PaymentMethod string `json:"payment_method"`
}

// Pay debits the buyer's wallet for a pending order.
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	o, err := h.Stores.Orders.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Order not found")
	}
	if o.BuyerID != uid {
		return fail(c, fiber.StatusForbidden, "Only the buyer can pay for this order")
	}
	if o.Status != models.OrderPending {
		return fail(c, fiber.StatusBadRequest, "Order is not awaiting payment")
	}

	var req PayOrderReq
	_ = c.BodyParser(&req)
	method := req.PaymentMethod
	if method == "" {
		method = "wallet"
	}

	if err := h.Payments.Checkout(c.Context(), o, method); err != nil {
		if errors.Is(err, store.ErrInsufficientFunds) {
			return fail(c, fiber.StatusPaymentRequired, "Insufficient balance")
		}
		return fail(c, fiber.StatusInternalServerError, "Payment failed")
	}

	h.Notifier.Notify(c.Context(), realtime.Event{
		UserID: o.SellerID,
		Type:   "order.paid",
		Payload: fiber.Map{
			"order_id":   o.ID,
			"order_code": o.OrderCode,
			"amount":     o.Amount,
		},
	})

	return ok(c, fiber.Map{
		"id":        o.ID,
		"status":    o.Status,
		"reference": o.Reference,
		"paid_at":   o.PaidAt,
	})
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}
	page, limit := parsePage(c)

	side := store.OrderSide(c.Query("side")) // buyer | seller | empty
	status := models.OrderStatus(c.Query("status"))

	orders, total, err := h.Stores.Orders.ListByUser(c.Context(), uid, side, status, page, limit)
	if err != nil {
		return storeErr(c, err, "Orders not found")
	}

	out := make([]fiber.Map, 0, len(orders))
	for _, o := range orders {
		m := fiber.Map{
			"id":         o.ID,
			"order_code": o.OrderCode,
			"service_id": o.ServiceID,
			"buyer_id":   o.BuyerID,
			"seller_id":  o.SellerID,
			"amount":     o.Amount,
			"status":     o.Status,
			"created_at": o.CreatedAt,
		}
		if o.Service != nil {
			m["service_title"] = o.Service.Title
		}
		out = append(out, m)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
		"meta": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total_items": total,
			"total_pages": totalPages(total, limit),
		},
	})
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	o, err := h.Stores.Orders.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Order not found")
	}
	if o.BuyerID != uid && o.SellerID != uid {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	return ok(c, o)
}

type OrderStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus walks the order through its lifecycle. Which transition is
// legal depends on the caller's side:
//
//	seller: paid -> working -> delivered
//	buyer:  delivered -> completed (credits the seller)
//	either: pending/paid -> cancelled (refund if already paid)
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	o, err := h.Stores.Orders.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Order not found")
	}
	if o.BuyerID != uid && o.SellerID != uid {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}

	var req OrderStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	target := models.OrderStatus(req.Status)

	isSeller := o.SellerID == uid
	isBuyer := o.BuyerID == uid

	allowed := false
	switch {
	case target == models.OrderWorking && o.Status == models.OrderPaid && isSeller:
		allowed = true
	case target == models.OrderDelivered && o.Status == models.OrderWorking && isSeller:
		allowed = true
	case target == models.OrderCompleted && o.Status == models.OrderDelivered && isBuyer:
		allowed = true
	case target == models.OrderCancelled && (o.Status == models.OrderPending || o.Status == models.OrderPaid):
		allowed = true
	}
	if !allowed {
		return fail(c, fiber.StatusBadRequest, "Transition not allowed")
	}

	switch target {
	case models.OrderCompleted:
		if err := h.Payments.Complete(c.Context(), o); err != nil {
			return fail(c, fiber.StatusInternalServerError, "Failed to complete order")
		}
	case models.OrderCancelled:
		if err := h.Payments.Cancel(c.Context(), o); err != nil {
			return fail(c, fiber.StatusInternalServerError, "Failed to cancel order")
		}
	default:
		o.Status = target
		if err := h.Stores.Orders.Update(c.Context(), o); err != nil {
			return fail(c, fiber.StatusInternalServerError, "Failed to update order")
		}
	}

	// tell the other side
	counterparty := o.SellerID
	if isSeller {
		counterparty = o.BuyerID
	}
	h.Notifier.Notify(c.Context(), realtime.Event{
		UserID: counterparty,
		Type:   "order." + string(o.Status),
		Payload: fiber.Map{
			"order_id":   o.ID,
			"order_code": o.OrderCode,
		},
	})

	return ok(c, fiber.Map{
		"id":     o.ID,
		"status": o.Status,
	})
}
