package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ordering-next/internal/catalog"
	"github.com/ordering-next/internal/config"
	"github.com/ordering-next/internal/models"
	"github.com/ordering-next/internal/provider"
	"github.com/ordering-next/internal/session"
	"github.com/ordering-next/internal/upstream"

	"github.com/gin-gonic/gin"
)

func newTestHandler(t *testing.T, upstreamHandler http.Handler) (*Handler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(upstreamHandler)
	client := upstream.NewClient(server.URL, 2*time.Second)

	cache := catalog.NewCache()
	cache.Replace([]models.Item{
		{ID: "A", Name: "Salad", UnitPrice: mustMoney(t, "5.00")},
		{ID: "B", Name: "Soup", UnitPrice: mustMoney(t, "3.00")},
	})

	container := &provider.Container{
		Config: &config.Config{
			Pricing: config.PricingConfig{DeliveryFee: "2.00", Currency: "USD"},
		},
		Upstream:    client,
		Catalog:     cache,
		Sessions:    session.NewManager(client),
		DeliveryFee: mustMoney(t, "2.00"),
	}
	return New(container), server.Close
}

func mustMoney(t *testing.T, raw string) models.Money {
	t.Helper()
	m, err := models.NewMoneyFromString(raw)
	if err != nil {
		t.Fatalf("parse money %q failed: %v", raw, err)
	}
	return m
}

func performJSON(handlerFunc gin.HandlerFunc, method, body string, params gin.Params) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/", reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params
	c.Set("session_token", "test-token")
	c.Set("user_id", uint(7))
	handlerFunc(c)
	return w
}

type envelope struct {
	StatusCode int                    `json:"status_code"`
	Msg        string                 `json:"msg"`
	Data       map[string]interface{} `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v (%s)", err, w.Body.String())
	}
	return resp
}

func okUpstream() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/cart/add", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/cart/remove", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/promocode/validate", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"discount":10}`))
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {})
	return mux
}

func TestAddCartItemComputesSummary(t *testing.T) {
	handler, closeServer := newTestHandler(t, okUpstream())
	defer closeServer()

	w := performJSON(handler.AddCartItem, http.MethodPost, `{"item_id":"A","quantity":2}`, nil)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp.Data["quantity"].(float64) != 2 {
		t.Fatalf("expected quantity 2, got %v", resp.Data["quantity"])
	}

	summary := resp.Data["summary"].(map[string]interface{})
	if summary["subtotal"] != "10.00" || summary["total"] != "12.00" {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestAddCartItemFailureRollsBackAndReports(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cart/add", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail":"backend down"}`))
	})
	handler, closeServer := newTestHandler(t, mux)
	defer closeServer()

	w := performJSON(handler.AddCartItem, http.MethodPost, `{"item_id":"A","quantity":2}`, nil)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode == 0 {
		t.Fatalf("expected error response")
	}
	if resp.Msg == "" {
		t.Fatalf("expected human-readable message")
	}

	sess := handler.Sessions.Get("test-token", 7)
	if sess.Cart.Store().Quantity("A") != 0 {
		t.Fatalf("expected rollback to 0, got %d", sess.Cart.Store().Quantity("A"))
	}
}

func TestPromoAppliesToSummary(t *testing.T) {
	handler, closeServer := newTestHandler(t, okUpstream())
	defer closeServer()

	performJSON(handler.AddCartItem, http.MethodPost, `{"item_id":"A","quantity":2}`, nil)
	performJSON(handler.AddCartItem, http.MethodPost, `{"item_id":"B","quantity":1}`, nil)

	w := performJSON(handler.ApplyPromo, http.MethodPost, `{"code":"SAVE10"}`, nil)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", resp.StatusCode, resp.Msg)
	}

	promo := resp.Data["promo"].(map[string]interface{})
	if promo["state"] != "applied" {
		t.Fatalf("expected applied promo, got %v", promo)
	}
	summary := resp.Data["summary"].(map[string]interface{})
	if summary["discount_amount"] != "1.30" || summary["total"] != "13.70" {
		t.Fatalf("unexpected summary with promo: %v", summary)
	}
}

func TestRemoveCartItemDecrementsByOne(t *testing.T) {
	handler, closeServer := newTestHandler(t, okUpstream())
	defer closeServer()

	performJSON(handler.AddCartItem, http.MethodPost, `{"item_id":"A","quantity":2}`, nil)

	w := performJSON(handler.RemoveCartItem, http.MethodDelete, "",
		gin.Params{{Key: "item_id", Value: "A"}})
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp.Data["quantity"].(float64) != 1 {
		t.Fatalf("expected quantity 1 after single remove, got %v", resp.Data["quantity"])
	}
}

func TestClearCartWaivesFee(t *testing.T) {
	handler, closeServer := newTestHandler(t, okUpstream())
	defer closeServer()

	performJSON(handler.AddCartItem, http.MethodPost, `{"item_id":"A","quantity":2}`, nil)
	w := performJSON(handler.ClearCart, http.MethodDelete, "", nil)

	resp := decodeEnvelope(t, w)
	summary := resp.Data["summary"].(map[string]interface{})
	if summary["subtotal"] != "0.00" || summary["delivery_fee"] != "0.00" || summary["total"] != "0.00" {
		t.Fatalf("expected zeroed summary after clear, got %v", summary)
	}
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	var gotOrder upstream.OrderRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/cart/add", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotOrder)
	})
	handler, closeServer := newTestHandler(t, mux)
	defer closeServer()

	performJSON(handler.AddCartItem, http.MethodPost, `{"item_id":"A","quantity":2}`, nil)

	w := performJSON(handler.Checkout, http.MethodPost, "", nil)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode != 0 {
		t.Fatalf("expected success, got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if gotOrder.Total.String() != "12.00" || len(gotOrder.Lines) != 1 {
		t.Fatalf("unexpected order payload: %+v", gotOrder)
	}

	sess := handler.Sessions.Get("test-token", 7)
	if sess.Cart.Store().Quantity("A") != 0 {
		t.Fatalf("expected cart cleared after checkout, got %d", sess.Cart.Store().Quantity("A"))
	}
}

func TestMissingSessionUnauthorized(t *testing.T) {
	handler, closeServer := newTestHandler(t, okUpstream())
	defer closeServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler.GetCart(c)

	resp := decodeEnvelope(t, w)
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 envelope, got %d", resp.StatusCode)
	}
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	handler, closeServer := newTestHandler(t, okUpstream())
	defer closeServer()

	w := performJSON(handler.Checkout, http.MethodPost, "", nil)
	resp := decodeEnvelope(t, w)
	if resp.StatusCode == 0 {
		t.Fatalf("expected empty cart to be rejected")
	}
}
