package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/store"
)

type CategoryHandler struct {
	Stores store.Stores
}

func NewCategoryHandler(stores store.Stores) *CategoryHandler {
	return &CategoryHandler{Stores: stores}
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.Stores.Services.Categories(c.Context())
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}
	return ok(c, categories)
}
