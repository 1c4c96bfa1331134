// Package eventbus publishes domain events to NATS.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"

	"yatube/internal/domain/event"
	"yatube/internal/resilience/circuitbreaker"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	PublishMsg(m *nats.Msg) error
}

// NATSPublisher implements event.Publisher on top of a NATS connection.
// The current trace context travels in the message headers.
type NATSPublisher struct {
	conn Conn
	cb   *circuitbreaker.Breaker
}

func NewNATSPublisher(conn Conn) *NATSPublisher {
	return &NATSPublisher{
		conn: conn,
		cb:   circuitbreaker.New(circuitbreaker.EventBus()),
	}
}

// Connect dials url with a client name and reconnect settings suited to a
// long-running server.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("yatube"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", slog.Any("error", err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("nats reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

func (p *NATSPublisher) PublishPostCreated(ctx context.Context, e event.PostCreated) error {
	return p.publish(ctx, event.SubjectPostCreated, e)
}

func (p *NATSPublisher) PublishFollowCreated(ctx context.Context, e event.FollowCreated) error {
	return p.publish(ctx, event.SubjectFollowCreated, e)
}

func (p *NATSPublisher) publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", subject, err)
	}

	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	otel.GetTextMapPropagator().Inject(ctx, HeaderCarrier(msg.Header))

	err = p.cb.Do(func() error {
		return p.conn.PublishMsg(msg)
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
