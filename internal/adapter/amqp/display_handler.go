package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pandawok/pos/internal/adapter/logger"
	"github.com/pandawok/pos/internal/interfaces"
)

// DisplayHandler renders fanout events for a kitchen display terminal.
// The push channel is an optimization: a display that missed events can
// rebuild its queue from the recent-orders endpoint.
type DisplayHandler struct {
	logger logger.Logger
}

func NewDisplayHandler(logger logger.Logger) *DisplayHandler {
	return &DisplayHandler{logger: logger}
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (h *DisplayHandler) HandleEvent(ctx context.Context, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse event envelope", "", nil, err)
		return err
	}

	switch env.Type {
	case interfaces.EventOrderCreated:
		return h.handleOrderCreated(env.Payload)
	case interfaces.EventLowStock:
		return h.handleLowStock(env.Payload)
	default:
		h.logger.Warn("unknown_event", "Ignoring event of unknown type", "", map[string]interface{}{
			"type": env.Type,
		})
		return nil
	}
}

func (h *DisplayHandler) handleOrderCreated(payload []byte) error {
	var msg interfaces.OrderCreatedMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse order event", "", nil, err)
		return err
	}

	h.logger.Debug("order_received", fmt.Sprintf("Order #%d received", msg.OrderID), "", map[string]interface{}{
		"order_id": msg.OrderID,
		"total":    msg.Total,
	})

	fmt.Printf("Order #%d ($%.2f, %d items)\n", msg.OrderID, msg.Total, len(msg.Items))
	for _, item := range msg.Items {
		fmt.Printf("  - %s [%s] $%.2f\n", item.Name, item.Category, item.Price)
	}

	return nil
}

func (h *DisplayHandler) handleLowStock(payload []byte) error {
	var msg interfaces.LowStockMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse low-stock event", "", nil, err)
		return err
	}

	fmt.Printf("LOW STOCK: %s\n", strings.Join(msg.LowStockItems, ", "))
	return nil
}
