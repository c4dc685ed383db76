package reporting

import (
	"context"
	"errors"
	"time"

	"github.com/pandawok/pos/internal/adapter/logger"
	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

var ErrInvalidWindow = errors.New("report window start must precede end")

// Service produces the interim (X) and closing (Z) rollups plus the
// auxiliary manager reports. All state lives in the ledger and the single
// watermark row; this layer only buckets what the repository selects.
type Service struct {
	reports   interfaces.ReportRepository
	inventory interfaces.InventoryRepository
	logger    logger.Logger
}

func NewService(reports interfaces.ReportRepository, inventory interfaces.InventoryRepository, logger logger.Logger) *Service {
	return &Service{
		reports:   reports,
		inventory: inventory,
		logger:    logger,
	}
}

// GetInterimReport aggregates the open period without touching the
// watermark. Repeated calls with no new orders return identical results.
func (s *Service) GetInterimReport(ctx context.Context) (domain.SalesReport, error) {
	entries, err := s.reports.OpenEntries(ctx)
	if err != nil {
		return domain.SalesReport{}, err
	}
	return domain.BucketHourly(entries), nil
}

// CloseReport aggregates the open period and advances the watermark, so
// the next interim report starts from zero.
func (s *Service) CloseReport(ctx context.Context) (domain.SalesReport, error) {
	entries, err := s.reports.CloseOpenPeriod(ctx)
	if err != nil {
		return domain.SalesReport{}, err
	}

	report := domain.BucketHourly(entries)
	s.logger.Info("period_closed", "Sales period closed", "", map[string]interface{}{
		"orders": len(entries),
		"total":  report.Total,
	})
	return report, nil
}

func (s *Service) SalesByRecipe(ctx context.Context, from, to time.Time) ([]domain.SalesLine, error) {
	if !from.Before(to) {
		return nil, ErrInvalidWindow
	}
	return s.reports.SalesByRecipe(ctx, from, to)
}

func (s *Service) InventoryUsage(ctx context.Context, from, to time.Time) ([]domain.UsageLine, error) {
	if !from.Before(to) {
		return nil, ErrInvalidWindow
	}
	return s.reports.InventoryUsage(ctx, from, to)
}

func (s *Service) RestockReport(ctx context.Context) ([]domain.RestockLine, error) {
	return s.inventory.ListRestock(ctx)
}

var _ interfaces.ReportingService = (*Service)(nil)
