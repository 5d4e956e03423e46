package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/adityarahman/gighub_be/internal/models"
	"github.com/adityarahman/gighub_be/internal/store"
)

type ServiceHandler struct {
	Stores store.Stores
}

func NewServiceHandler(stores store.Stores) *ServiceHandler {
	return &ServiceHandler{Stores: stores}
}

type ServiceReq struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Price       int64          `json:"price"`
	Tiers       map[string]any `json:"tiers"` // { basic: {...}, standard: {...}, premium: {...} }
	Status      string         `json:"status"`
}

func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	var req ServiceReq
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
	if req.Price <= 0 {
		errs.Add("price", "Price must be greater than zero")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	status := models.ServiceStatus(req.Status)
	switch status {
	case "", models.ServiceDraft:
		status = models.ServiceDraft
	case models.ServicePublished:
	default:
		return fail(c, fiber.StatusBadRequest, "Status must be draft or published")
	}

	var tiersJSON []byte
	if req.Tiers != nil {
		tiersJSON, err = json.Marshal(req.Tiers)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, "Failed to process tiers")
		}
	}

	svc := models.Service{
		FreelancerID: uid,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Tiers:        datatypes.JSON(tiersJSON),
		Status:       status,
	}

	if err := h.Stores.Services.Create(c.Context(), &svc); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to save service")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Service saved",
		"data": fiber.Map{
			"id":       svc.ID,
			"title":    svc.Title,
			"category": svc.Category,
			"status":   svc.Status,
		},
	})
}

func (h *ServiceHandler) ListMine(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}
	page, limit := parsePage(c)

	rows, total, err := h.Stores.Services.List(c.Context(), store.ServiceFilter{
		FreelancerID: uid,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return storeErr(c, err, "Services not found")
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		out = append(out, fiber.Map{
			"id":           r.Service.ID,
			"title":        r.Service.Title,
			"category":     r.Service.Category,
			"price":        r.Service.Price,
			"status":       r.Service.Status,
			"rating":       r.AvgRating,
			"review_count": r.ReviewCount,
			"sold":         r.Sold,
			"created_at":   r.Service.CreatedAt,
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

func (h *ServiceHandler) GetMine(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	svc, err := h.Stores.Services.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Service not found")
	}
	if svc.FreelancerID != uid {
		return fail(c, fiber.StatusNotFound, "Service not found")
	}
	return ok(c, svc)
}

func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	svc, err := h.Stores.Services.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Service not found")
	}
	if svc.FreelancerID != uid {
		return fail(c, fiber.StatusNotFound, "Service not found")
	}

	var req ServiceReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	if req.Title != "" {
		svc.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		svc.Description = req.Description
	}
	if req.Category != "" {
		svc.Category = req.Category
	}
	if req.Price > 0 {
		svc.Price = req.Price
	}
	if req.Tiers != nil {
		tiersJSON, _ := json.Marshal(req.Tiers)
		svc.Tiers = datatypes.JSON(tiersJSON)
	}
	if req.Status != "" {
		switch models.ServiceStatus(req.Status) {
		case models.ServiceDraft, models.ServicePublished, models.ServiceArchived:
			svc.Status = models.ServiceStatus(req.Status)
		default:
			return fail(c, fiber.StatusBadRequest, "Unknown status")
		}
	}

	if err := h.Stores.Services.Update(c.Context(), svc); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update service")
	}
	return okMessage(c, "Service updated")
}

func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	svc, err := h.Stores.Services.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Service not found")
	}
	if svc.FreelancerID != uid {
		return fail(c, fiber.StatusNotFound, "Service not found")
	}

	if err := h.Stores.Services.Delete(c.Context(), svc.ID); err != nil {
		return storeErr(c, err, "Service not found")
	}
	return okMessage(c, "Service deleted")
}

func (h *ServiceHandler) ListPublic(c *fiber.Ctx) error {
	page, limit := parsePage(c)

	f := store.ServiceFilter{
		Query:    c.Query("q"),
		Category: c.Query("cat"),
		MinPrice: int64(c.QueryInt("min", 0)),
		MaxPrice: int64(c.QueryInt("max", 0)),
		Sort:     c.Query("sort"), // latest | price_low | price_high
		Page:     page,
		Limit:    limit,
		Status:   models.ServicePublished,
	}

	rows, total, err := h.Stores.Services.List(c.Context(), f)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch services")
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		name := r.SellerName
		if name == "" {
			name = "Freelancer"
		}
		out = append(out, fiber.Map{
			"id":           r.Service.ID,
			"title":        r.Service.Title,
			"category":     r.Service.Category,
			"price":        r.Service.Price,
			"rating":       r.AvgRating,
			"review_count": r.ReviewCount,
			"sold":         r.Sold,
			"seller": fiber.Map{
				"id":   r.Service.FreelancerID,
				"name": name,
			},
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

func (h *ServiceHandler) GetDetail(c *fiber.Ctx) error {
	svc, err := h.Stores.Services.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Service not found")
	}
	if svc.Status != models.ServicePublished {
		return fail(c, fiber.StatusNotFound, "Service is not published")
	}

	stats, err := h.Stores.Services.Stats(c.Context(), svc.ID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch stats")
	}

	var tiers map[string]interface{}
	if len(svc.Tiers) > 0 {
		_ = json.Unmarshal(svc.Tiers, &tiers)
	}

	sellerName := ""
	if seller, err := h.Stores.Users.GetByID(c.Context(), svc.FreelancerID); err == nil {
		sellerName = seller.Name
	}

	return ok(c, fiber.Map{
		"id":           svc.ID,
		"title":        svc.Title,
		"description":  svc.Description,
		"category":     svc.Category,
		"price":        svc.Price,
		"tiers":        tiers,
		"status":       svc.Status,
		"rating":       stats.AvgRating,
		"review_count": stats.ReviewCount,
		"sold":         stats.Sold,
		"seller": fiber.Map{
			"id":   svc.FreelancerID,
			"name": sellerName,
		},
		"created_at": svc.CreatedAt,
		"updated_at": svc.UpdatedAt,
	})
}

func (h *ServiceHandler) GetReviews(c *fiber.Ctx) error {
	reviews, err := h.Stores.Reviews.ListByService(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Service not found")
	}

	out := make([]fiber.Map, 0, len(reviews))
	for _, r := range reviews {
		reviewerName := "User"
		if r.Reviewer != nil {
			reviewerName = r.Reviewer.Name
		}
		out = append(out, fiber.Map{
			"id":         r.ID,
			"rating":     r.Rating,
			"comment":    r.Comment,
			"created_at": r.CreatedAt,
			"reviewer": fiber.Map{
				"name": reviewerName,
			},
		})
	}
	return ok(c, out)
}
