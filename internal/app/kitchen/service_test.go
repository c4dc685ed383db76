package kitchen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandawok/pos/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, string, map[string]interface{})        {}
func (nopLogger) Warn(string, string, string, map[string]interface{})         {}
func (nopLogger) Error(string, string, string, map[string]interface{}, error) {}

type fakeOrderRepo struct {
	statuses  map[int64]domain.Status
	lastLimit int
	summaries []domain.OrderSummary
}

func (r *fakeOrderRepo) Create(context.Context, *domain.Order) error { return nil }

func (r *fakeOrderRepo) FindByIdempotencyKey(context.Context, string) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, orderID int64, status domain.Status) error {
	if _, ok := r.statuses[orderID]; !ok {
		return domain.ErrOrderNotFound
	}
	r.statuses[orderID] = status
	return nil
}

func (r *fakeOrderRepo) ListRecent(_ context.Context, limit int) ([]domain.OrderSummary, error) {
	r.lastLimit = limit
	return r.summaries, nil
}

func TestSetOrderStatus(t *testing.T) {
	repo := &fakeOrderRepo{statuses: map[int64]domain.Status{7: domain.StatusPending}}
	service := NewService(repo, nopLogger{})

	t.Run("accepts any non-empty string", func(t *testing.T) {
		status, err := service.SetOrderStatus(context.Background(), 7, "smoke break")
		require.NoError(t, err)
		assert.Equal(t, domain.Status("smoke break"), status)
		assert.Equal(t, domain.Status("smoke break"), repo.statuses[7])
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		status, err := service.SetOrderStatus(context.Background(), 7, "  completed  ")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, status)
	})

	t.Run("rejects empty status", func(t *testing.T) {
		_, err := service.SetOrderStatus(context.Background(), 7, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := service.SetOrderStatus(context.Background(), 404, "completed")
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

func TestListRecentOrdersClampsLimit(t *testing.T) {
	repo := &fakeOrderRepo{}
	service := NewService(repo, nopLogger{})

	_, err := service.ListRecentOrders(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, defaultRecentLimit, repo.lastLimit)

	_, err = service.ListRecentOrders(context.Background(), 5000)
	require.NoError(t, err)
	assert.Equal(t, maxRecentLimit, repo.lastLimit)

	_, err = service.ListRecentOrders(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, repo.lastLimit)
}
