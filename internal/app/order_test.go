package app

import (
	"testing"

	"github.com/gofiber/fiber/v2"
)

func topup(t *testing.T, app *fiber.App, cookie string, amount int64) {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/wallet/topup", fiber.Map{
		"amount": amount,
	}, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("topup: status %d body %v", resp.StatusCode, body)
	}
}

func createOrder(t *testing.T, app *fiber.App, cookie, serviceID string) string {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/orders", fiber.Map{
		"service_id":   serviceID,
		"requirements": "Two revisions please.",
	}, cookie)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create order: status %d body %v", resp.StatusCode, body)
	}
	return dataField(t, body, "id").(string)
}

func payOrder(t *testing.T, app *fiber.App, cookie, orderID string) {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/orders/"+orderID+"/pay", fiber.Map{}, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("pay order: status %d body %v", resp.StatusCode, body)
	}
}

func setOrderStatus(t *testing.T, app *fiber.App, cookie, orderID, status string) {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPatch, "/api/orders/"+orderID+"/status", fiber.Map{
		"status": status,
	}, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("set status %s: status %d body %v", status, resp.StatusCode, body)
	}
}

func walletBalance(t *testing.T, app *fiber.App, cookie string) int64 {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/me/wallet", nil, cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("wallet: status %d", resp.StatusCode)
	}
	return int64(dataField(t, body, "balance").(float64))
}

func TestOrderLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	seller, _ := register(t, app, "Dina", "dina@example.com", "freelancer")
	buyer, _ := register(t, app, "Eko", "eko@example.com", "employer")

	serviceID := createService(t, app, seller, "Logo design", "design", 50000, "published")
	topup(t, app, buyer, 100000)

	orderID := createOrder(t, app, buyer, serviceID)
	payOrder(t, app, buyer, orderID)

	if got := walletBalance(t, app, buyer); got != 50000 {
		t.Errorf("buyer balance after payment = %d, want 50000", got)
	}

	setOrderStatus(t, app, seller, orderID, "working")
	setOrderStatus(t, app, seller, orderID, "delivered")
	setOrderStatus(t, app, buyer, orderID, "completed")

	// 10% platform fee, seller receives the rest
	if got := walletBalance(t, app, seller); got != 45000 {
		t.Errorf("seller balance after completion = %d, want 45000", got)
	}

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/orders/"+orderID, nil, buyer)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get order: status %d", resp.StatusCode)
	}
	if got := dataField(t, body, "status"); got != "completed" {
		t.Errorf("final status = %v, want completed", got)
	}
}

func TestOrderInsufficientBalance(t *testing.T) {
	app, _ := newTestApp(t)

	seller, _ := register(t, app, "Dina", "dina@example.com", "freelancer")
	buyer, _ := register(t, app, "Eko", "eko@example.com", "employer")

	serviceID := createService(t, app, seller, "Logo design", "design", 50000, "published")
	orderID := createOrder(t, app, buyer, serviceID)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/orders/"+orderID+"/pay", fiber.Map{}, buyer)
	if resp.StatusCode != fiber.StatusPaymentRequired {
		t.Fatalf("pay without funds: status %d, want 402", resp.StatusCode)
	}

	// partial funds still fail, nothing is taken
	topup(t, app, buyer, 30000)
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/orders/"+orderID+"/pay", fiber.Map{}, buyer)
	if resp.StatusCode != fiber.StatusPaymentRequired {
		t.Fatalf("pay with partial funds: status %d, want 402", resp.StatusCode)
	}
	if got := walletBalance(t, app, buyer); got != 30000 {
		t.Errorf("balance after failed payment = %d, want 30000", got)
	}
}

func TestOrderOwnService(t *testing.T) {
	app, _ := newTestApp(t)

	seller, _ := register(t, app, "Dina", "dina@example.com", "freelancer")
	serviceID := createService(t, app, seller, "Logo design", "design", 50000, "published")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/orders", fiber.Map{
		"service_id": serviceID,
	}, seller)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("order own service: status %d, want 400", resp.StatusCode)
	}
}

func TestOrderDraftService(t *testing.T) {
	app, _ := newTestApp(t)

	seller, _ := register(t, app, "Dina", "dina@example.com", "freelancer")
	buyer, _ := register(t, app, "Eko", "eko@example.com", "employer")

	draftID := createService(t, app, seller, "SEO audit", "marketing", 80000, "draft")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/orders", fiber.Map{
		"service_id": draftID,
	}, buyer)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("order draft service: status %d, want 400", resp.StatusCode)
	}
}

func TestOrderIllegalTransitions(t *testing.T) {
	app, _ := newTestApp(t)

	seller, _ := register(t, app, "Dina", "dina@example.com", "freelancer")
	buyer, _ := register(t, app, "Eko", "eko@example.com", "employer")

	serviceID := createService(t, app, seller, "Logo design", "design", 50000, "published")
	topup(t, app, buyer, 50000)
	orderID := createOrder(t, app, buyer, serviceID)
	payOrder(t, app, buyer, orderID)

	// buyer cannot start the work
	resp, _ := doJSON(t, app, fiber.MethodPatch, "/api/orders/"+orderID+"/status", fiber.Map{
		"status": "working",
	}, buyer)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("buyer -> working: status %d, want 400", resp.StatusCode)
	}

	// seller cannot skip straight to delivered
	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/orders/"+orderID+"/status", fiber.Map{
		"status": "delivered",
	}, seller)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("paid -> delivered: status %d, want 400", resp.StatusCode)
	}

	// seller cannot complete on the buyer's behalf
	setOrderStatus(t, app, seller, orderID, "working")
	setOrderStatus(t, app, seller, orderID, "delivered")
	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/orders/"+orderID+"/status", fiber.Map{
		"status": "completed",
	}, seller)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("seller -> completed: status %d, want 400", resp.StatusCode)
	}
}

func TestOrderCancelRefundsBuyer(t *testing.T) {
	app, _ := newTestApp(t)

	seller, _ := register(t, app, "Dina", "dina@example.com", "freelancer")
	buyer, _ := register(t, app, "Eko", "eko@example.com", "employer")

	serviceID := createService(t, app, seller, "Logo design", "design", 50000, "published")
	topup(t, app, buyer, 50000)
	orderID := createOrder(t, app, buyer, serviceID)
	payOrder(t, app, buyer, orderID)

	if got := walletBalance(t, app, buyer); got != 0 {
		t.Fatalf("balance after payment = %d, want 0", got)
	}

	setOrderStatus(t, app, buyer, orderID, "cancelled")

	if got := walletBalance(t, app, buyer); got != 50000 {
		t.Errorf("balance after refund = %d, want 50000", got)
	}

	// cancelled orders cannot move again
	resp, _ := doJSON(t, app, fiber.MethodPatch, "/api/orders/"+orderID+"/status", fiber.Map{
		"status": "working",
	}, seller)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("cancelled -> working: status %d, want 400", resp.StatusCode)
	}
}

func TestOrderVisibility(t *testing.T) {
	app, _ := newTestApp(t)

	seller, _ := register(t, app, "Dina", "dina@example.com", "freelancer")
	buyer, _ := register(t, app, "Eko", "eko@example.com", "employer")
	outsider, _ := register(t, app, "Tono", "tono@example.com", "employer")

	serviceID := createService(t, app, seller, "Logo design", "design", 50000, "published")
	orderID := createOrder(t, app, buyer, serviceID)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/orders/"+orderID, nil, outsider)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("outsider reading order: status %d, want 404", resp.StatusCode)
	}

	for _, cookie := range []string{buyer, seller} {
		resp, _ := doJSON(t, app, fiber.MethodGet, "/api/orders/"+orderID, nil, cookie)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("participant reading order: status %d, want 200", resp.StatusCode)
		}
	}

	_, body := doJSON(t, app, fiber.MethodGet, "/api/orders?side=seller", nil, seller)
	if rows := body["data"].([]interface{}); len(rows) != 1 {
		t.Errorf("seller order list = %d rows, want 1", len(rows))
	}
	_, body = doJSON(t, app, fiber.MethodGet, "/api/orders?side=seller", nil, buyer)
	if rows := body["data"].([]interface{}); len(rows) != 0 {
		t.Errorf("buyer as seller list = %d rows, want 0", len(rows))
	}
}

func TestReviewRules(t *testing.T) {
	app, _ := newTestApp(t)

	seller, _ := register(t, app, "Dina", "dina@example.com", "freelancer")
	buyer, _ := register(t, app, "Eko", "eko@example.com", "employer")

	serviceID := createService(t, app, seller, "Logo design", "design", 50000, "published")
	topup(t, app, buyer, 50000)
	orderID := createOrder(t, app, buyer, serviceID)
	payOrder(t, app, buyer, orderID)

	// not completed yet
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/orders/"+orderID+"/review", fiber.Map{
		"rating": 5,
	}, buyer)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("review before completion: status %d, want 400", resp.StatusCode)
	}

	setOrderStatus(t, app, seller, orderID, "working")
	setOrderStatus(t, app, seller, orderID, "delivered")
	setOrderStatus(t, app, buyer, orderID, "completed")

	// seller cannot review their own order
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/orders/"+orderID+"/review", fiber.Map{
		"rating": 5,
	}, seller)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("seller review: status %d, want 403", resp.StatusCode)
	}

	// rating bounds
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/orders/"+orderID+"/review", fiber.Map{
		"rating": 6,
	}, buyer)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("rating 6: status %d, want 400", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/orders/"+orderID+"/review", fiber.Map{
		"rating":  4,
		"comment": "Quick turnaround.",
	}, buyer)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("review: status %d, want 201", resp.StatusCode)
	}

	// one review per order
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/orders/"+orderID+"/review", fiber.Map{
		"rating": 1,
	}, buyer)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("second review: status %d, want 409", resp.StatusCode)
	}

	// review shows up on the service, with the stats
	_, body := doJSON(t, app, fiber.MethodGet, "/api/services/"+serviceID+"/reviews", nil, "")
	if rows := body["data"].([]interface{}); len(rows) != 1 {
		t.Fatalf("service reviews = %d, want 1", len(rows))
	}
	_, body = doJSON(t, app, fiber.MethodGet, "/api/services/"+serviceID, nil, "")
	if got := dataField(t, body, "rating").(float64); got != 4 {
		t.Errorf("service rating = %v, want 4", got)
	}
	if got := dataField(t, body, "sold").(float64); got != 1 {
		t.Errorf("service sold = %v, want 1", got)
	}
}
