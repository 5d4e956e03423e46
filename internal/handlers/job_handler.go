package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/adityarahman/gighub_be/internal/models"
	"github.com/adityarahman/gighub_be/internal/store"
)

type JobHandler struct {
	Stores store.Stores
}

func NewJobHandler(stores store.Stores) *JobHandler {
	return &JobHandler{Stores: stores}
}

type JobReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Budget      int64    `json:"budget"`
	Skills      []string `json:"skills"`
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	var req JobReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	errs := FieldErrors{}
	if strings.TrimSpace(req.Title) == "" {
		errs.Add("title", "Title is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		errs.Add("category", "Category is required")
	}
	if req.Budget <= 0 {
		errs.Add("budget", "Budget must be greater than zero")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var skillsJSON []byte
	if req.Skills != nil {
		skillsJSON, _ = json.Marshal(req.Skills)
	}

	j := models.Job{
		EmployerID:  uid,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
		Skills:      datatypes.JSON(skillsJSON),
		Status:      models.JobOpen,
	}

	if err := h.Stores.Jobs.Create(c.Context(), &j); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to save job")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Job posted",
		"data": fiber.Map{
			"id":     j.ID,
			"title":  j.Title,
			"status": j.Status,
		},
	})
}

func (h *JobHandler) ListPublic(c *fiber.Ctx) error {
	page, limit := parsePage(c)

	f := store.JobFilter{
		Query:     c.Query("q"),
		Category:  c.Query("cat"),
		MinBudget: int64(c.QueryInt("min", 0)),
		MaxBudget: int64(c.QueryInt("max", 0)),
		Sort:      c.Query("sort"), // latest | budget_low | budget_high
		Page:      page,
		Limit:     limit,
		Status:    models.JobOpen,
	}

	jobs, total, err := h.Stores.Jobs.List(c.Context(), f)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch jobs")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    jobs,
		"meta": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total_items": total,
			"total_pages": totalPages(total, limit),
		},
	})
}

func (h *JobHandler) GetDetail(c *fiber.Ctx) error {
	j, err := h.Stores.Jobs.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Job not found")
	}
	return ok(c, j)
}

func (h *JobHandler) ListMine(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}
	page, limit := parsePage(c)

	jobs, total, err := h.Stores.Jobs.List(c.Context(), store.JobFilter{
		EmployerID: uid,
		Status:     models.JobStatus(c.Query("status")),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch jobs")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    jobs,
		"meta": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total_items": total,
			"total_pages": totalPages(total, limit),
		},
	})
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	j, err := h.Stores.Jobs.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Job not found")
	}
	if j.EmployerID != uid {
		return fail(c, fiber.StatusNotFound, "Job not found")
	}

	var req JobReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	if req.Title != "" {
		j.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		j.Description = req.Description
	}
	if req.Category != "" {
		j.Category = req.Category
	}
	if req.Budget > 0 {
		j.Budget = req.Budget
	}
	if req.Skills != nil {
		skillsJSON, _ := json.Marshal(req.Skills)
		j.Skills = datatypes.JSON(skillsJSON)
	}

	if err := h.Stores.Jobs.Update(c.Context(), j); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update job")
	}
	return okMessage(c, "Job updated")
}

// Close marks a job closed (or filled) so it stops accepting applications.
func (h *JobHandler) Close(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	j, err := h.Stores.Jobs.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Job not found")
	}
	if j.EmployerID != uid {
		return fail(c, fiber.StatusNotFound, "Job not found")
	}
	if j.Status != models.JobOpen {
		return fail(c, fiber.StatusBadRequest, "Job is not open")
	}

	var req struct {
		Filled bool `json:"filled"`
	}
	_ = c.BodyParser(&req)

	j.Status = models.JobClosed
	if req.Filled {
		j.Status = models.JobFilled
	}

	if err := h.Stores.Jobs.Update(c.Context(), j); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to close job")
	}
	return okMessage(c, "Job closed")
}
