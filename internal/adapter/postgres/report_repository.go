package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

type reportRepository struct {
	db DB
}

func NewReportRepository(db DB) interfaces.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) OpenEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	query := `
		SELECT created_at, price
		FROM orders
		WHERE created_at >= (SELECT closed_at FROM report_watermark WHERE id = 1)
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query open period: %w", err)
	}

	return scanEntries(rows)
}

// CloseOpenPeriod selects the open period against a single cutoff and
// advances the watermark in the same transaction.
//
// FOR UPDATE on the watermark row serializes concurrent closes and blocks
// on any in-flight order commit holding it FOR SHARE; the cutoff is read
// only after the lock is granted, so every already-committed order falls
// below it and every later commit stamps a created_at above it.
func (r *reportRepository) CloseOpenPeriod(ctx context.Context) ([]domain.LedgerEntry, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var watermark time.Time
	err = tx.QueryRow(ctx,
		`SELECT closed_at FROM report_watermark WHERE id = 1 FOR UPDATE`,
	).Scan(&watermark)
	if err != nil {
		return nil, fmt.Errorf("failed to lock watermark: %w", err)
	}

	var cutoff time.Time
	if err := tx.QueryRow(ctx, `SELECT clock_timestamp()`).Scan(&cutoff); err != nil {
		return nil, fmt.Errorf("failed to read cutoff: %w", err)
	}

	rows, err := tx.Query(ctx,
		`SELECT created_at, price FROM orders WHERE created_at >= $1 AND created_at < $2`,
		watermark, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query closing period: %w", err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE report_watermark SET closed_at = $1 WHERE id = 1`,
		cutoff,
	); err != nil {
		return nil, fmt.Errorf("failed to advance watermark: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit period close: %w", err)
	}

	return entries, nil
}

func (r *reportRepository) SalesByRecipe(ctx context.Context, from, to time.Time) ([]domain.SalesLine, error) {
	query := `
		SELECT r.id, r.name, r.category, r.price, COUNT(ro.id) AS quantity
		FROM recipes r
		JOIN recipe_orders ro ON ro.recipe_id = r.id
		JOIN orders o ON o.id = ro.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY r.id, r.name, r.category, r.price
		ORDER BY quantity DESC, r.name
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales report: %w", err)
	}
	defer rows.Close()

	var lines []domain.SalesLine
	for rows.Next() {
		var line domain.SalesLine
		if err := rows.Scan(&line.RecipeID, &line.Name, &line.Category, &line.Price, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan sales line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sales report: %w", err)
	}

	return lines, nil
}

func (r *reportRepository) InventoryUsage(ctx context.Context, from, to time.Time) ([]domain.UsageLine, error) {
	query := `
		SELECT i.ingredient, COUNT(*) AS used, i.price
		FROM inventory i
		JOIN recipe_ingredient ri ON ri.ingredient_id = i.id
		JOIN recipe_orders ro ON ro.recipe_id = ri.recipe_id
		JOIN orders o ON o.id = ro.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY i.id, i.ingredient, i.price
		ORDER BY used DESC, i.ingredient
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory usage: %w", err)
	}
	defer rows.Close()

	var lines []domain.UsageLine
	for rows.Next() {
		var line domain.UsageLine
		if err := rows.Scan(&line.Ingredient, &line.Used, &line.Price); err != nil {
			return nil, fmt.Errorf("failed to scan usage line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory usage: %w", err)
	}

	return lines, nil
}

func scanEntries(rows Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(&entry.CreatedAt, &entry.Total); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger entries: %w", err)
	}

	return entries, nil
}
