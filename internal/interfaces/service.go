package interfaces

import (
	"context"
	"time"

	"github.com/pandawok/pos/internal/domain"
)

// CheckoutCommand is the cart collaborator's input to order finalization.
// ClientTotal is advisory only; the persisted total is always recomputed
// from the catalog.
type CheckoutCommand struct {
	Lines          []CheckoutLine
	ClientTotal    *float64
	IdempotencyKey *string
	EmployeeID     *int64
}

type CheckoutLine struct {
	RecipeID int64
	Quantity int
}

// CheckoutService finalizes carts into ledger entries.
type CheckoutService interface {
	FinalizeOrder(ctx context.Context, cmd CheckoutCommand) (*domain.Order, error)
}

// DecrementEngine adjusts inventory for a committed order. Best-effort
// relative to the ledger: it reports low-stock signals but never fails the
// order.
type DecrementEngine interface {
	ApplyDecrement(ctx context.Context, lines []domain.OrderLine)
}

// ReportingService produces sales rollups and the auxiliary reports.
type ReportingService interface {
	GetInterimReport(ctx context.Context) (domain.SalesReport, error)
	CloseReport(ctx context.Context) (domain.SalesReport, error)
	SalesByRecipe(ctx context.Context, from, to time.Time) ([]domain.SalesLine, error)
	InventoryUsage(ctx context.Context, from, to time.Time) ([]domain.UsageLine, error)
	RestockReport(ctx context.Context) ([]domain.RestockLine, error)
}

// KitchenService is the status surface consumed by kitchen displays.
type KitchenService interface {
	SetOrderStatus(ctx context.Context, orderID int64, status string) (domain.Status, error)
	ListRecentOrders(ctx context.Context, limit int) ([]domain.OrderSummary, error)
}
