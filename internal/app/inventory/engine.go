package inventory

import (
	"context"

	"github.com/pandawok/pos/internal/adapter/logger"
	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

// Engine adjusts ingredient stock for a committed order: every
// recipe-ingredient link consumes one unit per ordered unit. Availability
// wins over strict accounting — quantities may go negative, and any row
// that does reach its threshold is reported as a low-stock signal instead
// of rejecting the order.
type Engine struct {
	catalog   interfaces.CatalogRepository
	inventory interfaces.InventoryRepository
	publisher interfaces.EventPublisher
	logger    logger.Logger
}

func NewEngine(
	catalog interfaces.CatalogRepository,
	inventory interfaces.InventoryRepository,
	publisher interfaces.EventPublisher,
	logger logger.Logger,
) *Engine {
	return &Engine{
		catalog:   catalog,
		inventory: inventory,
		publisher: publisher,
		logger:    logger,
	}
}

// ApplyDecrement never fails the order: the ledger already holds the
// truth about what was sold, so every problem here is logged and skipped.
func (e *Engine) ApplyDecrement(ctx context.Context, lines []domain.OrderLine) {
	lowSeen := make(map[string]bool)
	var low []string

	for _, line := range lines {
		ingredientIDs, err := e.catalog.IngredientIDs(ctx, line.RecipeID)
		if err != nil {
			e.logger.Error("ingredient_lookup_failed", "Failed to resolve recipe ingredients", "", map[string]interface{}{
				"recipe_id": line.RecipeID,
			}, err)
			continue
		}

		for _, id := range ingredientIDs {
			level, err := e.inventory.Decrement(ctx, id, float64(line.Quantity))
			if err != nil {
				e.logger.Error("decrement_failed", "Failed to decrement ingredient", "", map[string]interface{}{
					"ingredient_id": id,
					"recipe_id":     line.RecipeID,
				}, err)
				continue
			}

			if level.Low() && !lowSeen[level.Name] {
				lowSeen[level.Name] = true
				low = append(low, level.Name)
			}
		}
	}

	if len(low) > 0 {
		if err := e.publisher.PublishLowStock(ctx, interfaces.LowStockMessage{LowStockItems: low}); err != nil {
			e.logger.Error("publish_failed", "Failed to publish low-stock event", "", map[string]interface{}{
				"items": low,
			}, err)
		}
	}
}

var _ interfaces.DecrementEngine = (*Engine)(nil)
