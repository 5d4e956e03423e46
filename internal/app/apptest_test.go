package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/adityarahman/gighub_be/internal/config"
	"github.com/adityarahman/gighub_be/internal/middleware"
	"github.com/adityarahman/gighub_be/internal/realtime"
	"github.com/adityarahman/gighub_be/internal/store"
)

func newTestApp(t *testing.T) (*fiber.App, store.Stores) {
	t.Helper()

	cfg := config.Config{
		StoreDriver:     "memory",
		JWTSecret:       "test-secret",
		JWTExpiresMin:   60,
		FrontendBaseURL: "http://localhost:3000",
		PlatformFeePct:  10,
	}

	stores := store.NewMemoryStores()
	hub := realtime.NewHub()
	go hub.Run()
	notifier := realtime.NewNotifier(hub, nil)

	return New(cfg, stores, hub, notifier), stores
}

// doJSON fires one request at the app and decodes the JSON body. cookie may
// be empty for public routes.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookie string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var out map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c.Value
		}
	}
	t.Fatal("session cookie not set")
	return ""
}

// register creates an account through the API and returns its session
// cookie and user ID.
func register(t *testing.T, app *fiber.App, name, email, role string) (cookie, userID string) {
	t.Helper()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	}, "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register %s: status %d body %v", email, resp.StatusCode, body)
	}

	cookie = sessionCookie(t, resp)
	user := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	return cookie, user["id"].(string)
}

func dataField(t *testing.T, body map[string]interface{}, key string) interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("no data object in response: %v", body)
	}
	return data[key]
}
