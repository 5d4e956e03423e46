package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/models"
	"github.com/adityarahman/gighub_be/internal/store"
)

type WalletHandler struct {
	Stores store.Stores
}

func NewWalletHandler(stores store.Stores) *WalletHandler {
	return &WalletHandler{Stores: stores}
}

// Me returns the caller's balance with a page of the ledger.
func (h *WalletHandler) Me(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	u, err := h.Stores.Users.GetByID(c.Context(), uid)
	if err != nil {
		return storeErr(c, err, "User not found")
	}

	page, limit := parsePage(c)
	entries, total, err := h.Stores.Wallet.ListByUser(c.Context(), uid, page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load transactions")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"balance":      u.Balance,
			"transactions": entries,
		},
		"meta": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total_items": total,
			"total_pages": totalPages(total, limit),
		},
	})
}

type TopupReq struct {
	Amount int64 `json:"amount"`
}

func (h *WalletHandler) Topup(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	var req TopupReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	fieldErrors := FieldErrors{}
	if req.Amount <= 0 {
		fieldErrors["amount"] = append(fieldErrors["amount"], "Amount must be greater than zero")
	}
	if len(fieldErrors) > 0 {
		return validationFail(c, fieldErrors)
	}

	if err := h.Stores.Wallet.Credit(c.Context(), uid, req.Amount, models.WalletCredit, "", "Wallet top up"); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Top up failed")
	}

	u, err := h.Stores.Users.GetByID(c.Context(), uid)
	if err != nil {
		return storeErr(c, err, "User not found")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Top up successful",
		"data":    fiber.Map{"balance": u.Balance},
	})
}
