// Package events publishes order lifecycle events for downstream consumers
// such as the kitchen display.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Raviram02/HostelBite/internal/domain/model"

	"github.com/nats-io/nats.go"
)

const (
	SubjectOrderPlaced  = "canteen.order.placed"
	SubjectOrderPaid    = "canteen.order.paid"
	SubjectOrderStatus  = "canteen.order.status"
	SubjectOrderDeleted = "canteen.order.deleted"
)

type OrderEvent struct {
	OrderID       string              `json:"orderId"`
	UserID        string              `json:"userId"`
	Status        model.OrderStatus   `json:"status"`
	IsPaid        bool                `json:"isPaid"`
	OrderMode     model.OrderMode     `json:"orderMode"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	Amount        int64               `json:"amount"`
	OccurredAt    time.Time           `json:"occurredAt"`
}

func NewOrderEvent(o model.Order, at time.Time) OrderEvent {
	return OrderEvent{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Status:        o.Status,
		IsPaid:        o.IsPaid,
		OrderMode:     o.OrderMode,
		PaymentMethod: o.PaymentMethod,
		Amount:        o.Amount,
		OccurredAt:    at,
	}
}

// Conn is the part of *nats.Conn the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
}

type NATSPublisher struct {
	conn   Conn
	logger *slog.Logger
}

func NewNATSPublisher(conn Conn, logger *slog.Logger) *NATSPublisher {
	return &NATSPublisher{conn: conn, logger: logger}
}

// Connect dials NATS with reconnects enabled.
func Connect(url string, logger *slog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("hostelbite-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

// Publish is fire and forget. Orders are already committed when it runs,
// so failures are logged and dropped.
func (p *NATSPublisher) Publish(ctx context.Context, subject string, ev OrderEvent) {
	if err := ctx.Err(); err != nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("marshal order event", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("publish order event", "subject", subject, "order_id", ev.OrderID, "error", err)
	}
}

// NoopPublisher is used when NATS_URL is not set.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, OrderEvent) {}
