package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/pandawok/pos/internal/adapter/logger"
	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

// Service turns composed carts into committed ledger entries. The ledger
// is the source of truth for what was sold; inventory and notifier effects
// are downstream of the commit and never unwind it.
type Service struct {
	orders    interfaces.OrderRepository
	catalog   interfaces.CatalogRepository
	decrement interfaces.DecrementEngine
	publisher interfaces.EventPublisher
	logger    logger.Logger
}

func NewService(
	orders interfaces.OrderRepository,
	catalog interfaces.CatalogRepository,
	decrement interfaces.DecrementEngine,
	publisher interfaces.EventPublisher,
	logger logger.Logger,
) *Service {
	return &Service{
		orders:    orders,
		catalog:   catalog,
		decrement: decrement,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) FinalizeOrder(ctx context.Context, cmd interfaces.CheckoutCommand) (*domain.Order, error) {
	lines := make([]domain.OrderLine, len(cmd.Lines))
	for i, l := range cmd.Lines {
		lines[i] = domain.OrderLine{RecipeID: l.RecipeID, Quantity: l.Quantity}
	}

	order, err := domain.NewOrder(lines, cmd.EmployeeID, cmd.IdempotencyKey)
	if err != nil {
		s.logger.Error("validation_failed", "Order validation failed", "", nil, err)
		return nil, err
	}

	if cmd.IdempotencyKey != nil {
		if _, err := uuid.Parse(*cmd.IdempotencyKey); err != nil {
			return nil, fmt.Errorf("invalid idempotency key: %w", err)
		}
		if existing, err := s.orders.FindByIdempotencyKey(ctx, *cmd.IdempotencyKey); err == nil {
			s.logger.Info("order_replayed", "Returning already-committed order for retried key", "", map[string]interface{}{
				"order_id": existing.ID,
			})
			return existing, nil
		} else if !errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
	}

	recipes, err := s.catalog.FindRecipes(ctx, recipeIDs(order.Lines))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipes: %w", err)
	}

	// The persisted total always comes from catalog prices; the client's
	// figure is advisory and logged when it disagrees.
	var total float64
	for _, line := range order.Lines {
		recipe, ok := recipes[line.RecipeID]
		if !ok {
			return nil, fmt.Errorf("recipe %d: %w", line.RecipeID, domain.ErrRecipeNotFound)
		}
		if !recipe.Active {
			return nil, fmt.Errorf("recipe %d: %w", line.RecipeID, domain.ErrRecipeInactive)
		}
		total += recipe.Price * float64(line.Quantity)
	}
	order.Total = total

	if cmd.ClientTotal != nil && math.Abs(*cmd.ClientTotal-total) > 0.005 {
		s.logger.Warn("client_total_mismatch", "Client-declared total disagrees with catalog pricing", "", map[string]interface{}{
			"client_total": *cmd.ClientTotal,
			"server_total": total,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, domain.ErrDuplicateOrder) && cmd.IdempotencyKey != nil {
			// Lost the race against our own retry; the first commit won.
			return s.orders.FindByIdempotencyKey(ctx, *cmd.IdempotencyKey)
		}
		s.logger.Error("db_transaction_failed", "Failed to commit order", "", nil, err)
		return nil, err
	}

	s.logger.Debug("order_committed", "Order committed to ledger", "", map[string]interface{}{
		"order_id": order.ID,
		"total":    order.Total,
		"units":    order.UnitCount(),
	})

	// Inventory accuracy is best-effort relative to the ledger: the engine
	// logs its own failures and never unwinds the commit.
	s.decrement.ApplyDecrement(ctx, order.Lines)

	s.publishOrderCreated(ctx, order, recipes)

	return order, nil
}

func (s *Service) publishOrderCreated(ctx context.Context, order *domain.Order, recipes map[int64]domain.Recipe) {
	msg := interfaces.OrderCreatedMessage{
		OrderID:   order.ID,
		Total:     order.Total,
		Timestamp: order.CreatedAt,
	}
	for _, line := range order.Lines {
		recipe := recipes[line.RecipeID]
		for i := 0; i < line.Quantity; i++ {
			msg.Items = append(msg.Items, interfaces.OrderItemMessage{
				Name:     recipe.Name,
				Category: recipe.Category,
				Price:    recipe.Price,
			})
		}
	}

	if err := s.publisher.PublishOrderCreated(ctx, msg); err != nil {
		s.logger.Error("publish_failed", "Failed to publish order event", "", map[string]interface{}{
			"order_id": order.ID,
		}, err)
	}
}

func recipeIDs(lines []domain.OrderLine) []int64 {
	seen := make(map[int64]bool, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		if !seen[line.RecipeID] {
			seen[line.RecipeID] = true
			ids = append(ids, line.RecipeID)
		}
	}
	return ids
}

var _ interfaces.CheckoutService = (*Service)(nil)
