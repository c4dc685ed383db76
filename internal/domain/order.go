package domain

import (
	"errors"
	"time"
)

// Order is a committed ledger entry. Everything except Status is immutable
// once FinalizeOrder has written it.
type Order struct {
	ID             int64
	Total          float64
	Status         Status
	EmployeeID     *int64
	IdempotencyKey *string
	Lines          []OrderLine
	CreatedAt      time.Time
}

// OrderLine is one requested recipe with a quantity. In storage the quantity
// is expanded into one recipe_orders row per unit.
type OrderLine struct {
	RecipeID int64
	Quantity int
}

// NewOrder validates the proposed lines and returns an uncommitted order.
// The total is filled in by checkout once catalog prices are resolved.
func NewOrder(lines []OrderLine, employeeID *int64, idempotencyKey *string) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range lines {
		if line.RecipeID <= 0 {
			return nil, ErrRecipeNotFound
		}
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	return &Order{
		Status:         StatusPending,
		EmployeeID:     employeeID,
		IdempotencyKey: idempotencyKey,
		Lines:          lines,
	}, nil
}

// UnitCount returns the number of junction rows the order produces.
func (o *Order) UnitCount() int {
	n := 0
	for _, line := range o.Lines {
		n += line.Quantity
	}
	return n
}

// OrderItem is one grouped line of a committed order as shown to the
// kitchen; quantity is recovered by counting junction rows.
type OrderItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderSummary is the read-only projection served to the kitchen queue.
type OrderSummary struct {
	ID        int64       `json:"id"`
	CreatedAt time.Time   `json:"time"`
	Status    Status      `json:"status"`
	Items     []OrderItem `json:"items"`
}

var (
	ErrEmptyOrder         = errors.New("order must contain at least one line item")
	ErrInvalidQuantity    = errors.New("line item quantity must be at least 1")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrRecipeInactive     = errors.New("recipe is not active")
	ErrOrderNotFound      = errors.New("order not found")
	ErrDuplicateOrder     = errors.New("order with this idempotency key already exists")
	ErrInvalidStatus      = errors.New("status must not be empty")
	ErrIngredientNotFound = errors.New("ingredient not found")
)
