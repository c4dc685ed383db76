package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

type nopLogger struct{}

func (nopLogger) Info(string, string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, string, map[string]interface{})        {}
func (nopLogger) Warn(string, string, string, map[string]interface{})         {}
func (nopLogger) Error(string, string, string, map[string]interface{}, error) {}

type stubCheckout struct {
	order *domain.Order
	err   error
}

func (s *stubCheckout) FinalizeOrder(context.Context, interfaces.CheckoutCommand) (*domain.Order, error) {
	return s.order, s.err
}

type stubKitchen struct {
	status    domain.Status
	err       error
	summaries []domain.OrderSummary
}

func (s *stubKitchen) SetOrderStatus(_ context.Context, _ int64, status string) (domain.Status, error) {
	if s.err != nil {
		return "", s.err
	}
	return domain.Status(status), nil
}

func (s *stubKitchen) ListRecentOrders(context.Context, int) ([]domain.OrderSummary, error) {
	return s.summaries, s.err
}

func TestCreateOrderResponds201(t *testing.T) {
	service := &stubCheckout{order: &domain.Order{
		ID:        42,
		Total:     10.80,
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}}
	handler := NewCheckoutHandler(service, nopLogger{})

	body := bytes.NewBufferString(`{"items":[{"recipe_id":1,"quantity":2}]}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	rec := httptest.NewRecorder()

	handler.CreateOrder(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateOrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(42), resp.OrderID)
	assert.InDelta(t, 10.80, resp.Total, 1e-9)
	assert.Equal(t, "pending", resp.Status)
}

func TestCreateOrderErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"empty order", domain.ErrEmptyOrder, http.StatusBadRequest},
		{"bad quantity", domain.ErrInvalidQuantity, http.StatusBadRequest},
		{"unknown recipe", domain.ErrRecipeNotFound, http.StatusNotFound},
		{"inactive recipe", domain.ErrRecipeInactive, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCheckoutHandler(&stubCheckout{err: tc.err}, nopLogger{})

			body := bytes.NewBufferString(`{"items":[{"recipe_id":1,"quantity":1}]}`)
			req := httptest.NewRequest(http.MethodPost, "/orders", body)
			rec := httptest.NewRecorder()

			handler.CreateOrder(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestCreateOrderRejectsBadBody(t *testing.T) {
	handler := NewCheckoutHandler(&stubCheckout{}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()

	handler.CreateOrder(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderRejectsMalformedIdempotencyKey(t *testing.T) {
	handler := NewCheckoutHandler(&stubCheckout{}, nopLogger{})

	body := bytes.NewBufferString(`{"items":[{"recipe_id":1,"quantity":1}],"idempotency_key":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	rec := httptest.NewRecorder()

	handler.CreateOrder(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus(t *testing.T) {
	handler := NewKitchenHandler(&stubKitchen{}, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/orders/{id:[0-9]+}/status", handler.UpdateStatus).Methods(http.MethodPost)

	body := bytes.NewBufferString(`{"status":"in_progress"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders/7/status", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UpdateStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(7), resp.OrderID)
	assert.Equal(t, "in_progress", resp.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	handler := NewKitchenHandler(&stubKitchen{err: domain.ErrOrderNotFound}, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/orders/{id:[0-9]+}/status", handler.UpdateStatus).Methods(http.MethodPost)

	body := bytes.NewBufferString(`{"status":"completed"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders/404/status", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRecentReturnsEmptyArray(t *testing.T) {
	handler := NewKitchenHandler(&stubKitchen{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/orders/recent", nil)
	rec := httptest.NewRecorder()

	handler.ListRecent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "no orders serializes as an empty list, not null")
}

func TestListRecentRejectsBadLimit(t *testing.T) {
	handler := NewKitchenHandler(&stubKitchen{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/orders/recent?limit=abc", nil)
	rec := httptest.NewRecorder()

	handler.ListRecent(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
