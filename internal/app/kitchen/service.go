package kitchen

import (
	"context"
	"strings"

	"github.com/pandawok/pos/internal/adapter/logger"
	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// Service is the kitchen-facing surface: status writes and the
// recent-orders projection of the ledger.
type Service struct {
	orders interfaces.OrderRepository
	logger logger.Logger
}

func NewService(orders interfaces.OrderRepository, logger logger.Logger) *Service {
	return &Service{orders: orders, logger: logger}
}

// SetOrderStatus writes the status as given. The kitchen workflow imposes
// no transition rules, so any non-empty string is accepted.
func (s *Service) SetOrderStatus(ctx context.Context, orderID int64, status string) (domain.Status, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return "", domain.ErrInvalidStatus
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.Status(status)); err != nil {
		return "", err
	}

	s.logger.Debug("status_updated", "Order status updated", "", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return domain.Status(status), nil
}

func (s *Service) ListRecentOrders(ctx context.Context, limit int) ([]domain.OrderSummary, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.orders.ListRecent(ctx, limit)
}

var _ interfaces.KitchenService = (*Service)(nil)
