package interfaces

import (
	"context"
	"time"

	"github.com/pandawok/pos/internal/domain"
)

// CatalogRepository reads the recipe catalog and its ingredient links.
type CatalogRepository interface {
	// FindRecipes resolves the given ids; missing ids are simply absent
	// from the result map.
	FindRecipes(ctx context.Context, ids []int64) (map[int64]domain.Recipe, error)
	// IngredientIDs lists the inventory rows one unit of the recipe consumes.
	IngredientIDs(ctx context.Context, recipeID int64) ([]int64, error)
}

// InventoryRepository mutates and reads ingredient stock.
type InventoryRepository interface {
	// Decrement atomically subtracts delta from the row's quantity and
	// returns the resulting level. Quantities may go negative.
	Decrement(ctx context.Context, ingredientID int64, delta float64) (domain.StockLevel, error)
	ListRestock(ctx context.Context) ([]domain.RestockLine, error)
}

// OrderRepository owns the order ledger: orders plus their junction rows.
type OrderRepository interface {
	// Create commits the order and all of its junction rows in one
	// transaction, stamping ID and CreatedAt. A duplicate idempotency key
	// fails with domain.ErrDuplicateOrder and writes nothing.
	Create(ctx context.Context, order *domain.Order) error
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.Status) error
	ListRecent(ctx context.Context, limit int) ([]domain.OrderSummary, error)
}

// ReportRepository reads the ledger for rollups and owns the period
// watermark.
type ReportRepository interface {
	// OpenEntries returns every order committed since the watermark.
	OpenEntries(ctx context.Context) ([]domain.LedgerEntry, error)
	// CloseOpenPeriod atomically selects the open period up to a single
	// cutoff, advances the watermark to that cutoff and returns the
	// selected entries. Concurrent closes serialize.
	CloseOpenPeriod(ctx context.Context) ([]domain.LedgerEntry, error)
	SalesByRecipe(ctx context.Context, from, to time.Time) ([]domain.SalesLine, error)
	InventoryUsage(ctx context.Context, from, to time.Time) ([]domain.UsageLine, error)
}
