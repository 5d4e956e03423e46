package app

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

func createJob(t *testing.T, app *fiber.App, cookie, title, category string, budget int64) string {
	t.Helper()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/employer/jobs", fiber.Map{
		"title":       title,
		"description": "Looking for help.",
		"category":    category,
		"budget":      budget,
		"skills":      []string{"go", "postgres"},
	}, cookie)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create job: status %d body %v", resp.StatusCode, body)
	}
	return dataField(t, body, "id").(string)
}

func TestJobCreateRequiresEmployerRole(t *testing.T) {
	app, _ := newTestApp(t)

	cookie, _ := register(t, app, "Dina", "dina@example.com", "freelancer")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/employer/jobs", fiber.Map{
		"title":    "Landing page",
		"category": "web",
		"budget":   200000,
	}, cookie)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("freelancer posting job: status %d, want 403", resp.StatusCode)
	}
}

func TestJobValidation(t *testing.T) {
	app, _ := newTestApp(t)

	cookie, _ := register(t, app, "Eko", "eko@example.com", "employer")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/employer/jobs", fiber.Map{
		"title":  "",
		"budget": 0,
	}, cookie)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("invalid job: status %d, want 400", resp.StatusCode)
	}
	errs := body["errors"].(map[string]interface{})
	for _, field := range []string{"title", "category", "budget"} {
		if errs[field] == nil {
			t.Errorf("missing field error for %s: %v", field, errs)
		}
	}
}

func TestJobPublicListingShowsOnlyOpen(t *testing.T) {
	app, _ := newTestApp(t)

	cookie, _ := register(t, app, "Eko", "eko@example.com", "employer")
	openID := createJob(t, app, cookie, "Landing page", "web", 200000)
	closedID := createJob(t, app, cookie, "Old gig", "web", 100000)

	resp, _ := doJSON(t, app, fiber.MethodPatch, "/api/employer/jobs/"+closedID+"/close", fiber.Map{}, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("close job: status %d", resp.StatusCode)
	}

	_, body := doJSON(t, app, fiber.MethodGet, "/api/jobs", nil, "")
	rows := body["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("open jobs = %d, want 1", len(rows))
	}
	if rows[0].(map[string]interface{})["id"] != openID {
		t.Errorf("listed job = %v, want %s", rows[0], openID)
	}
}

func TestApplicationFlow(t *testing.T) {
	app, _ := newTestApp(t)

	employer, _ := register(t, app, "Eko", "eko@example.com", "employer")
	freelancer, _ := register(t, app, "Dina", "dina@example.com", "freelancer")

	jobID := createJob(t, app, employer, "Landing page", "web", 200000)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/jobs/"+jobID+"/applications", fiber.Map{
		"cover_letter": "I have shipped three of these.",
		"bid_amount":   180000,
	}, freelancer)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("apply: status %d body %v", resp.StatusCode, body)
	}
	appID := dataField(t, body, "id").(string)

	// same freelancer cannot apply twice
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/jobs/"+jobID+"/applications", fiber.Map{
		"cover_letter": "Me again.",
	}, freelancer)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate apply: status %d, want 409", resp.StatusCode)
	}

	// employer sees it
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/jobs/"+jobID+"/applications", nil, employer)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list applications: status %d", resp.StatusCode)
	}
	if rows := body["data"].([]interface{}); len(rows) != 1 {
		t.Fatalf("applications = %d, want 1", len(rows))
	}

	// employer approves
	resp, body = doJSON(t, app, fiber.MethodPatch, "/api/applications/"+appID, fiber.Map{
		"status": "approved",
	}, employer)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("approve: status %d body %v", resp.StatusCode, body)
	}

	// decided applications cannot change again
	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/applications/"+appID, fiber.Map{
		"status": "rejected",
	}, employer)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("re-decide: status %d, want 400", resp.StatusCode)
	}

	// nor be withdrawn once approved
	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/applications/"+appID, nil, freelancer)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("withdraw approved: status %d, want 400", resp.StatusCode)
	}
}

func TestApplicationOnClosedJob(t *testing.T) {
	app, _ := newTestApp(t)

	employer, _ := register(t, app, "Eko", "eko@example.com", "employer")
	freelancer, _ := register(t, app, "Dina", "dina@example.com", "freelancer")

	jobID := createJob(t, app, employer, "Landing page", "web", 200000)
	doJSON(t, app, fiber.MethodPatch, "/api/employer/jobs/"+jobID+"/close", fiber.Map{}, employer)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/jobs/"+jobID+"/applications", fiber.Map{
		"cover_letter": "Too late?",
	}, freelancer)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("apply to closed job: status %d, want 400", resp.StatusCode)
	}
}

func TestApplicationListForJobOwnerOnly(t *testing.T) {
	app, _ := newTestApp(t)

	owner, _ := register(t, app, "Eko", "eko@example.com", "employer")
	other, _ := register(t, app, "Tono", "tono@example.com", "employer")

	jobID := createJob(t, app, owner, "Landing page", "web", 200000)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/jobs/"+jobID+"/applications", nil, other)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("foreign employer listing applications: status %d, want 404", resp.StatusCode)
	}
}
