package reporting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandawok/pos/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, string, map[string]interface{})        {}
func (nopLogger) Warn(string, string, string, map[string]interface{})         {}
func (nopLogger) Error(string, string, string, map[string]interface{}, error) {}

// fakeLedger mimics the watermark protocol: commits and closes serialize
// on one lock, and a close moves the open entries out atomically.
type fakeLedger struct {
	mu   sync.Mutex
	open []domain.LedgerEntry
}

func (l *fakeLedger) commit(entry domain.LedgerEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open = append(l.open, entry)
}

func (l *fakeLedger) OpenEntries(context.Context) ([]domain.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.LedgerEntry, len(l.open))
	copy(out, l.open)
	return out, nil
}

func (l *fakeLedger) CloseOpenPeriod(context.Context) ([]domain.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.open
	l.open = nil
	return out, nil
}

func (l *fakeLedger) SalesByRecipe(context.Context, time.Time, time.Time) ([]domain.SalesLine, error) {
	return nil, nil
}

func (l *fakeLedger) InventoryUsage(context.Context, time.Time, time.Time) ([]domain.UsageLine, error) {
	return nil, nil
}

type fakeRestock struct {
	lines []domain.RestockLine
}

func (f *fakeRestock) Decrement(context.Context, int64, float64) (domain.StockLevel, error) {
	return domain.StockLevel{}, nil
}

func (f *fakeRestock) ListRestock(context.Context) ([]domain.RestockLine, error) {
	return f.lines, nil
}

func entry(total float64) domain.LedgerEntry {
	return domain.LedgerEntry{CreatedAt: time.Now(), Total: total}
}

func TestInterimReportIsNonDestructive(t *testing.T) {
	ledger := &fakeLedger{}
	service := NewService(ledger, &fakeRestock{}, nopLogger{})

	ledger.commit(entry(10.80))
	ledger.commit(entry(4.20))

	first, err := service.GetInterimReport(context.Background())
	require.NoError(t, err)
	second, err := service.GetInterimReport(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 15.00, first.Total, 1e-9)
	assert.Equal(t, first, second, "interim reads leave the open period untouched")
}

func TestCloseReportDrainsOpenPeriod(t *testing.T) {
	ledger := &fakeLedger{}
	service := NewService(ledger, &fakeRestock{}, nopLogger{})

	ledger.commit(entry(10.80))

	closed, err := service.CloseReport(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 10.80, closed.Total, 1e-9)

	interim, err := service.GetInterimReport(context.Background())
	require.NoError(t, err)
	assert.Zero(t, interim.Total, "a fresh period starts empty")

	again, err := service.CloseReport(context.Background())
	require.NoError(t, err)
	assert.Zero(t, again.Total, "closing an empty period yields an empty report")
}

// Every committed order lands in exactly one closed period (or the final
// open one) regardless of how commits interleave with closes.
func TestCloseReportConservesOrders(t *testing.T) {
	ledger := &fakeLedger{}
	service := NewService(ledger, &fakeRestock{}, nopLogger{})

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	var closedTotal float64

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				ledger.commit(entry(1))
			}
		}()
	}
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report, err := service.CloseReport(context.Background())
			assert.NoError(t, err)
			mu.Lock()
			closedTotal += report.Total
			mu.Unlock()
		}()
	}
	wg.Wait()

	final, err := service.CloseReport(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, float64(producers*perProducer), closedTotal+final.Total, 1e-9,
		"every order counted exactly once across all periods")
}

func TestWindowedReportsRejectInvalidWindow(t *testing.T) {
	service := NewService(&fakeLedger{}, &fakeRestock{}, nopLogger{})
	now := time.Now()

	_, err := service.SalesByRecipe(context.Background(), now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = service.InventoryUsage(context.Background(), now, now)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestRestockReportPassesThrough(t *testing.T) {
	restock := &fakeRestock{lines: []domain.RestockLine{
		{Ingredient: "rice", Quantity: 2, MinimumStock: 5, Price: 1.10},
	}}
	service := NewService(&fakeLedger{}, restock, nopLogger{})

	lines, err := service.RestockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "rice", lines[0].Ingredient)
}
