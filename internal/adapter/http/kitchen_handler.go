package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pandawok/pos/internal/adapter/logger"
	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

type KitchenHandler struct {
	service interfaces.KitchenService
	logger  logger.Logger
}

func NewKitchenHandler(service interfaces.KitchenService, logger logger.Logger) *KitchenHandler {
	return &KitchenHandler{
		service: service,
		logger:  logger,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

func (h *KitchenHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	status, err := h.service.SetOrderStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			respondError(w, "Status must not be empty", http.StatusBadRequest)
		case errors.Is(err, domain.ErrOrderNotFound):
			respondError(w, "Order not found", http.StatusNotFound)
		default:
			h.logger.Error("status_update_failed", "Failed to update order status", "", map[string]interface{}{
				"order_id": orderID,
			}, err)
			respondError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, UpdateStatusResponse{
		OrderID: orderID,
		Status:  string(status),
	})
}

func (h *KitchenHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, "Limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	orders, err := h.service.ListRecentOrders(r.Context(), limit)
	if err != nil {
		h.logger.Error("recent_orders_failed", "Failed to list recent orders", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if orders == nil {
		orders = []domain.OrderSummary{}
	}
	respondJSON(w, http.StatusOK, orders)
}
