package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/utils"
)

const testSecret = "test-secret"

func newProtectedApp(roles ...string) *fiber.App {
	app := fiber.New()
	chain := []fiber.Handler{JWTFromCookie(testSecret), AttachJWTLocals()}
	if len(roles) > 0 {
		chain = append(chain, RequireRoles(roles...))
	}
	handlers := append(chain, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	app.Get("/secure", handlers...)
	return app
}

func request(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/secure", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func TestJWTFromCookie(t *testing.T) {
	app := newProtectedApp()

	if resp := request(t, app, ""); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("no cookie: status %d, want 401", resp.StatusCode)
	}

	if resp := request(t, app, "not-a-jwt"); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("garbage token: status %d, want 401", resp.StatusCode)
	}

	forged, err := utils.SignJWT("other-secret", "1", "admin", 60)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if resp := request(t, app, forged); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("forged token: status %d, want 401", resp.StatusCode)
	}

	valid, err := utils.SignJWT(testSecret, "1", "freelancer", 60)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if resp := request(t, app, valid); resp.StatusCode != fiber.StatusOK {
		t.Errorf("valid token: status %d, want 200", resp.StatusCode)
	}
}

func TestRequireRoles(t *testing.T) {
	app := newProtectedApp("admin")

	user, err := utils.SignJWT(testSecret, "1", "freelancer", 60)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if resp := request(t, app, user); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("freelancer on admin route: status %d, want 403", resp.StatusCode)
	}

	admin, err := utils.SignJWT(testSecret, "2", "admin", 60)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if resp := request(t, app, admin); resp.StatusCode != fiber.StatusOK {
		t.Errorf("admin: status %d, want 200", resp.StatusCode)
	}

	// role matching is case-insensitive
	upper, err := utils.SignJWT(testSecret, "3", "Admin", 60)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if resp := request(t, app, upper); resp.StatusCode != fiber.StatusOK {
		t.Errorf("uppercase role: status %d, want 200", resp.StatusCode)
	}
}
