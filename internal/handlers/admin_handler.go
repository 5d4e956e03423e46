package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/models"
	"github.com/adityarahman/gighub_be/internal/store"
)

type AdminHandler struct {
	Stores store.Stores
}

func NewAdminHandler(stores store.Stores) *AdminHandler {
	return &AdminHandler{Stores: stores}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, limit := parsePage(c)
	users, total, err := h.Stores.Users.List(c.Context(), page, limit)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load users")
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{
			"id":         u.ID,
			"name":       u.Name,
			"email":      u.Email,
			"role":       u.Role,
			"status":     u.Status,
			"balance":    u.Balance,
			"created_at": u.CreatedAt,
		})
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

// SetUserStatus blocks or unblocks an account. Admins cannot block themselves.
func (h *AdminHandler) SetUserStatus(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	target := models.UserStatus(req.Status)
	if target != models.UserActive && target != models.UserBlocked {
		return fail(c, fiber.StatusBadRequest, "Status must be active or blocked")
	}

	u, err := h.Stores.Users.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "User not found")
	}
	if u.ID == uid && target == models.UserBlocked {
		return fail(c, fiber.StatusBadRequest, "You cannot block your own account")
	}

	u.Status = target
	if err := h.Stores.Users.Update(c.Context(), u); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return ok(c, fiber.Map{"id": u.ID, "status": u.Status})
}

// Stats returns platform-wide counters for the admin dashboard.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	ctx := c.Context()

	_, totalUsers, err := h.Stores.Users.List(ctx, 1, 1)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load stats")
	}
	totalServices, err := h.Stores.Services.Count(ctx)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load stats")
	}
	totalJobs, err := h.Stores.Jobs.Count(ctx)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load stats")
	}
	totalOrders, err := h.Stores.Orders.Count(ctx)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load stats")
	}
	gmv, err := h.Stores.Orders.SumAmountByStatus(ctx, models.OrderCompleted)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load stats")
	}

	return ok(c, fiber.Map{
		"total_users":    totalUsers,
		"total_services": totalServices,
		"total_jobs":     totalJobs,
		"total_orders":   totalOrders,
		"gross_volume":   gmv,
	})
}

// ArchiveService takes a listing off the marketplace without deleting it.
func (h *AdminHandler) ArchiveService(c *fiber.Ctx) error {
	svc, err := h.Stores.Services.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Service not found")
	}
	svc.Status = models.ServiceArchived
	if err := h.Stores.Services.Update(c.Context(), svc); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to archive service")
	}
	return ok(c, fiber.Map{"id": svc.ID, "status": svc.Status})
}

func (h *AdminHandler) CloseJob(c *fiber.Ctx) error {
	job, err := h.Stores.Jobs.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Job not found")
	}
	job.Status = models.JobClosed
	if err := h.Stores.Jobs.Update(c.Context(), job); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to close job")
	}
	return ok(c, fiber.Map{"id": job.ID, "status": job.Status})
}
