package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pandawok/pos/internal/domain"
	"github.com/pandawok/pos/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

// Create commits the order and its junction rows in one transaction.
//
// The shared lock on the watermark row pins the order on one side of any
// concurrent period close: while we hold it, CloseReport cannot read its
// cutoff, and created_at is stamped only after the lock is granted. An
// order therefore either commits wholly before a close's cutoff or
// carries a timestamp after it — never half in, half out.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var watermark time.Time
	err = tx.QueryRow(ctx,
		`SELECT closed_at FROM report_watermark WHERE id = 1 FOR SHARE`,
	).Scan(&watermark)
	if err != nil {
		return fmt.Errorf("failed to lock watermark: %w", err)
	}

	query := `
		INSERT INTO orders (price, status, employee_id, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, clock_timestamp())
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, query,
		order.Total, order.Status, order.EmployeeID, order.IdempotencyKey,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateOrder
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	// One junction row per ordered unit; quantity lives in the row count.
	for _, line := range order.Lines {
		for i := 0; i < line.Quantity; i++ {
			_, err = tx.Exec(ctx,
				`INSERT INTO recipe_orders (recipe_id, order_id) VALUES ($1, $2)`,
				line.RecipeID, order.ID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order line: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	query := `
		SELECT id, price, status, employee_id, idempotency_key, created_at
		FROM orders
		WHERE idempotency_key = $1
	`

	var order domain.Order
	err := r.db.QueryRow(ctx, query, key).Scan(
		&order.ID, &order.Total, &order.Status,
		&order.EmployeeID, &order.IdempotencyKey, &order.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}

	linesQuery := `
		SELECT recipe_id, COUNT(*)
		FROM recipe_orders
		WHERE order_id = $1
		GROUP BY recipe_id
		ORDER BY recipe_id
	`
	rows, err := r.db.Query(ctx, linesQuery, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.RecipeID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order lines: %w", err)
	}

	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		status, orderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]domain.OrderSummary, error) {
	query := `
		SELECT o.id, o.created_at, o.status, r.name, r.category, r.price, COUNT(*)
		FROM orders o
		JOIN recipe_orders ro ON ro.order_id = o.id
		JOIN recipes r ON r.id = ro.recipe_id
		WHERE o.id IN (SELECT id FROM orders ORDER BY created_at DESC LIMIT $1)
		GROUP BY o.id, o.created_at, o.status, r.id, r.name, r.category, r.price
		ORDER BY o.created_at DESC, o.id DESC, r.name
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}
	defer rows.Close()

	var summaries []domain.OrderSummary
	index := make(map[int64]int)

	for rows.Next() {
		var (
			id        int64
			createdAt time.Time
			status    domain.Status
			item      domain.OrderItem
		)
		if err := rows.Scan(&id, &createdAt, &status, &item.Name, &item.Category, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan recent order: %w", err)
		}

		pos, ok := index[id]
		if !ok {
			summaries = append(summaries, domain.OrderSummary{
				ID:        id,
				CreatedAt: createdAt,
				Status:    status,
			})
			pos = len(summaries) - 1
			index[id] = pos
		}
		summaries[pos].Items = append(summaries[pos].Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent orders: %w", err)
	}

	return summaries, nil
}
