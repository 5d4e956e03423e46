package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/store"
)

type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

func getAuth(c *fiber.Ctx) (string, error) {
	rawID, ok := c.Locals("userId").(string)
	if !ok || rawID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return rawID, nil
}

// storeErr maps store sentinel errors onto the right HTTP response.
func storeErr(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail(c, fiber.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrInvalidID):
		return fail(c, fiber.StatusBadRequest, "Invalid ID")
	case errors.Is(err, store.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "Already exists")
	case errors.Is(err, store.ErrInsufficientFunds):
		return fail(c, fiber.StatusPaymentRequired, "Insufficient balance")
	}
	return fail(c, fiber.StatusInternalServerError, "Server error")
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func okMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

func parsePage(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
