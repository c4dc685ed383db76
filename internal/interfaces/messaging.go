package interfaces

import (
	"context"
	"time"
)

// Event types carried on the fanout exchange.
const (
	EventOrderCreated = "order_created"
	EventLowStock     = "low_stock"
)

// OrderCreatedMessage is handed to the kitchen displays after a commit.
// Items repeat once per ordered unit, mirroring the junction rows.
type OrderCreatedMessage struct {
	OrderID   int64              `json:"order_id"`
	Items     []OrderItemMessage `json:"items"`
	Total     float64            `json:"total"`
	Timestamp time.Time          `json:"timestamp"`
}

type OrderItemMessage struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// LowStockMessage names ingredients that reached their restock threshold.
type LowStockMessage struct {
	LowStockItems []string `json:"low_stock_items"`
}

// EventPublisher is the notifier boundary. Delivery is best-effort;
// callers log and discard publish errors.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMessage) error
	PublishLowStock(ctx context.Context, msg LowStockMessage) error
}

// EventHandler consumes raw fanout payloads on the display side.
type EventHandler func(ctx context.Context, body []byte) error

// EventConsumer subscribes a handler to the fanout exchange.
type EventConsumer interface {
	ConsumeEvents(ctx context.Context, handler EventHandler) error
}
