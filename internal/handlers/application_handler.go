package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/models"
	"github.com/adityarahman/gighub_be/internal/realtime"
	"github.com/adityarahman/gighub_be/internal/store"
)

type ApplicationHandler struct {
	Stores   store.Stores
	Notifier *realtime.Notifier
}

func NewApplicationHandler(stores store.Stores, notifier *realtime.Notifier) *ApplicationHandler {
	return &ApplicationHandler{Stores: stores, Notifier: notifier}
}

type ApplyReq struct {
	CoverLetter string `json:"cover_letter"`
	BidAmount   int64  `json:"bid_amount"`
}

// Apply creates an application for an open job. Applying to your own job
// is rejected here, not in the store.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	job, err := h.Stores.Jobs.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Job not found")
	}
	if job.Status != models.JobOpen {
		return fail(c, fiber.StatusBadRequest, "Job is not accepting applications")
	}
	if job.EmployerID == uid {
		return fail(c, fiber.StatusBadRequest, "You cannot apply to your own job")
	}

	var req ApplyReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if req.BidAmount < 0 {
		return fail(c, fiber.StatusBadRequest, "Bid amount cannot be negative")
	}

	a := models.Application{
		JobID:        job.ID,
		FreelancerID: uid,
		CoverLetter:  strings.TrimSpace(req.CoverLetter),
		BidAmount:    req.BidAmount,
		Status:       models.ApplicationPending,
	}

	if err := h.Stores.Applications.Create(c.Context(), &a); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fail(c, fiber.StatusConflict, "You already applied to this job")
		}
		return fail(c, fiber.StatusInternalServerError, "Failed to apply")
	}

	h.Notifier.Notify(c.Context(), realtime.Event{
		UserID: job.EmployerID,
		Type:   "application.received",
		Payload: fiber.Map{
			"application_id": a.ID,
			"job_id":         job.ID,
			"job_title":      job.Title,
		},
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Application submitted",
		"data": fiber.Map{
			"id":     a.ID,
			"job_id": a.JobID,
			"status": a.Status,
		},
	})
}

// ListForJob returns every application on one of the caller's jobs.
func (h *ApplicationHandler) ListForJob(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	job, err := h.Stores.Jobs.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Job not found")
	}
	if job.EmployerID != uid {
		return fail(c, fiber.StatusNotFound, "Job not found")
	}

	apps, err := h.Stores.Applications.ListByJob(c.Context(), job.ID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch applications")
	}

	out := make([]fiber.Map, 0, len(apps))
	for _, a := range apps {
		applicantName := ""
		if a.Freelancer != nil {
			applicantName = a.Freelancer.Name
		}
		out = append(out, fiber.Map{
			"id":           a.ID,
			"cover_letter": a.CoverLetter,
			"bid_amount":   a.BidAmount,
			"status":       a.Status,
			"created_at":   a.CreatedAt,
			"freelancer": fiber.Map{
				"id":   a.FreelancerID,
				"name": applicantName,
			},
		})
	}
	return ok(c, out)
}

func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	apps, err := h.Stores.Applications.ListByFreelancer(c.Context(), uid)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch applications")
	}

	out := make([]fiber.Map, 0, len(apps))
	for _, a := range apps {
		jobTitle := ""
		if a.Job != nil {
			jobTitle = a.Job.Title
		}
		out = append(out, fiber.Map{
			"id":           a.ID,
			"job_id":       a.JobID,
			"job_title":    jobTitle,
			"cover_letter": a.CoverLetter,
			"bid_amount":   a.BidAmount,
			"status":       a.Status,
			"created_at":   a.CreatedAt,
		})
	}
	return ok(c, out)
}

// Decide approves or rejects a pending application on the caller's job.
func (h *ApplicationHandler) Decide(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	a, err := h.Stores.Applications.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Application not found")
	}

	job, err := h.Stores.Jobs.GetByID(c.Context(), a.JobID)
	if err != nil {
		return storeErr(c, err, "Job not found")
	}
	if job.EmployerID != uid {
		return fail(c, fiber.StatusNotFound, "Application not found")
	}
	if a.Status != models.ApplicationPending {
		return fail(c, fiber.StatusBadRequest, "Application was already decided")
	}

	var req struct {
		Status string `json:"status"` // approved | rejected
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	switch models.ApplicationStatus(req.Status) {
	case models.ApplicationApproved, models.ApplicationRejected:
		a.Status = models.ApplicationStatus(req.Status)
	default:
		return fail(c, fiber.StatusBadRequest, "Status must be approved or rejected")
	}

	if err := h.Stores.Applications.Update(c.Context(), a); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update application")
	}

	h.Notifier.Notify(c.Context(), realtime.Event{
		UserID: a.FreelancerID,
		Type:   "application." + string(a.Status),
		Payload: fiber.Map{
			"application_id": a.ID,
			"job_id":         job.ID,
			"job_title":      job.Title,
		},
	})

	return okMessage(c, "Application "+string(a.Status))
}

// Withdraw lets a freelancer pull back a pending application.
func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	uid, err := getAuth(c)
	if err != nil {
		return err
	}

	a, err := h.Stores.Applications.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErr(c, err, "Application not found")
	}
	if a.FreelancerID != uid {
		return fail(c, fiber.StatusNotFound, "Application not found")
	}
	if a.Status != models.ApplicationPending {
		return fail(c, fiber.StatusBadRequest, "Only pending applications can be withdrawn")
	}

	a.Status = models.ApplicationWithdrawn
	if err := h.Stores.Applications.Update(c.Context(), a); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to withdraw application")
	}
	return okMessage(c, "Application withdrawn")
}
