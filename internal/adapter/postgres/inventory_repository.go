package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

type inventoryRepository struct {
	db DB
}

func NewInventoryRepository(db DB) interfaces.InventoryRepository {
	return &inventoryRepository{db: db}
}

// Decrement subtracts delta in a single UPDATE so concurrent orders sharing
// an ingredient cannot lose updates. Quantities are allowed to go negative.
func (r *inventoryRepository) Decrement(ctx context.Context, ingredientID int64, delta float64) (domain.StockLevel, error) {
	query := `
		UPDATE inventory
		SET quantity = quantity - $2
		WHERE id = $1
		RETURNING id, ingredient, quantity, minimum_stock, price
	`

	var level domain.StockLevel
	err := r.db.QueryRow(ctx, query, ingredientID, delta).Scan(
		&level.ID, &level.Name, &level.Quantity, &level.MinimumStock, &level.Price,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StockLevel{}, domain.ErrIngredientNotFound
	}
	if err != nil {
		return domain.StockLevel{}, fmt.Errorf("failed to decrement ingredient %d: %w", ingredientID, err)
	}

	return level, nil
}

func (r *inventoryRepository) ListRestock(ctx context.Context) ([]domain.RestockLine, error) {
	query := `
		SELECT ingredient, quantity, minimum_stock, price
		FROM inventory
		WHERE minimum_stock IS NOT NULL AND quantity <= minimum_stock
		ORDER BY ingredient
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query restock report: %w", err)
	}
	defer rows.Close()

	var lines []domain.RestockLine
	for rows.Next() {
		var line domain.RestockLine
		if err := rows.Scan(&line.Ingredient, &line.Quantity, &line.MinimumStock, &line.Price); err != nil {
			return nil, fmt.Errorf("failed to scan restock line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read restock report: %w", err)
	}

	return lines, nil
}
