package app

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/models"
)

func TestRegisterAndMe(t *testing.T) {
	app, _ := newTestApp(t)

	cookie, userID := register(t, app, "Dina", "dina@example.com", "freelancer")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/me", nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("me: status %d body %v", resp.StatusCode, body)
	}
	if got := dataField(t, body, "id"); got != userID {
		t.Errorf("me id = %v, want %s", got, userID)
	}
	if got := dataField(t, body, "role"); got != "freelancer" {
		t.Errorf("me role = %v, want freelancer", got)
	}
}

func TestMeWithoutCookie(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/me", nil, "")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("me without cookie: status %d, want 401", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "Dina", "dina@example.com", "freelancer")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"name":     "Other Dina",
		"email":    "dina@example.com",
		"password": "secret123",
		"role":     "employer",
	}, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("duplicate register: status %d, want 400", resp.StatusCode)
	}
	errs, ok := body["errors"].(map[string]interface{})
	if !ok || errs["email"] == nil {
		t.Errorf("expected email field error, got %v", body)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": "secret123",
		"role":     "admin",
	}, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("admin self-register: status %d, want 400", resp.StatusCode)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "Dina", "dina@example.com", "freelancer")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "dina@example.com",
		"password": "wrong-password",
	}, "")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("wrong password: status %d, want 401", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "unknown@example.com",
		"password": "secret123",
	}, "")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("unknown email: status %d, want 401", resp.StatusCode)
	}
}

func TestLoginBlockedAccount(t *testing.T) {
	app, stores := newTestApp(t)

	_, userID := register(t, app, "Dina", "dina@example.com", "freelancer")

	u, err := stores.Users.GetByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	u.Status = models.UserBlocked
	if err := stores.Users.Update(context.Background(), u); err != nil {
		t.Fatalf("block user: %v", err)
	}

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "dina@example.com",
		"password": "secret123",
	}, "")
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("blocked login: status %d, want 403", resp.StatusCode)
	}
}

func TestLoginThenLogout(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "Dina", "dina@example.com", "freelancer")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "dina@example.com",
		"password": "secret123",
	}, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	cookie := sessionCookie(t, resp)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/logout", nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("logout: status %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "gh_token" && c.MaxAge >= 0 {
			t.Errorf("logout should expire the cookie, got MaxAge %d", c.MaxAge)
		}
	}
}
