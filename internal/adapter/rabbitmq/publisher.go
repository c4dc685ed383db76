package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pandawok/pos/internal/interfaces"
)

// ordersExchange fans committed-order and low-stock events out to every
// connected kitchen display.
const ordersExchange = "pos.orders.fanout"

// envelope wraps every fanout payload with a type tag so one exchange can
// carry both event kinds.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type publisher struct {
	conn Connection
}

func NewPublisher(conn Connection) interfaces.EventPublisher {
	return &publisher{conn: conn}
}

func (p *publisher) PublishOrderCreated(ctx context.Context, msg interfaces.OrderCreatedMessage) error {
	return p.publish(interfaces.EventOrderCreated, msg, amqp.Persistent)
}

func (p *publisher) PublishLowStock(ctx context.Context, msg interfaces.LowStockMessage) error {
	return p.publish(interfaces.EventLowStock, msg, amqp.Transient)
}

func (p *publisher) publish(eventType string, payload any, deliveryMode uint8) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(ordersExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	body, err := json.Marshal(envelope{Type: eventType, Payload: raw})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	err = ch.Publish(ordersExchange, "", false, false, amqp.Publishing{
		DeliveryMode: deliveryMode,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	return nil
}
