package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pandawok/pos/internal/adapter/logger"
	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

type CheckoutHandler struct {
	service interfaces.CheckoutService
	logger  logger.Logger
}

func NewCheckoutHandler(service interfaces.CheckoutService, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger,
	}
}

type CreateOrderRequest struct {
	Items          []OrderLineRequest `json:"items"`
	Total          *float64           `json:"total,omitempty"`
	IdempotencyKey *string            `json:"idempotency_key,omitempty"`
	EmployeeID     *int64             `json:"employee_id,omitempty"`
}

type OrderLineRequest struct {
	RecipeID int64 `json:"recipe_id"`
	Quantity int   `json:"quantity"`
}

type CreateOrderResponse struct {
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *CheckoutHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.IdempotencyKey != nil {
		if _, err := uuid.Parse(*req.IdempotencyKey); err != nil {
			respondError(w, "Idempotency key must be a valid UUID", http.StatusBadRequest)
			return
		}
	}

	cmd := interfaces.CheckoutCommand{
		ClientTotal:    req.Total,
		IdempotencyKey: req.IdempotencyKey,
		EmployeeID:     req.EmployeeID,
	}
	for _, item := range req.Items {
		cmd.Lines = append(cmd.Lines, interfaces.CheckoutLine{
			RecipeID: item.RecipeID,
			Quantity: item.Quantity,
		})
	}

	order, err := h.service.FinalizeOrder(r.Context(), cmd)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to finalize order", "", nil, err)
		respondError(w, err.Error(), statusForCheckoutError(err))
		return
	}

	respondJSON(w, http.StatusCreated, CreateOrderResponse{
		OrderID:   order.ID,
		Status:    string(order.Status),
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	})
}

func statusForCheckoutError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRecipeInactive):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
