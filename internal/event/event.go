// Package event publishes one notification per changed resource after a
// transaction commits, via an AMQP topic exchange, following the same
// connection/channel lifecycle the reference RabbitMQ producer in this
// codebase uses.
package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/streadway/amqp"

	"github.com/fcrepo-go/ldprepo/common/mlog"
	"github.com/fcrepo-go/ldprepo/common/mrabbitmq"
	"github.com/fcrepo-go/ldprepo/internal/txn"
)

// Exchange is the topic exchange every lifecycle event is published to.
const Exchange = "fcrepo.events"

// Notification is the wire payload published for a single changelog entry.
type Notification struct {
	Subject   string    `json:"subject"`
	EventType string    `json:"event_type"`
	Time      time.Time `json:"time"`
	Types     []string  `json:"types"`
	Actor     string    `json:"actor,omitempty"`
}

// Emitter publishes lifecycle events to the fcrepo.events topic exchange.
// It satisfies internal/txn.Publisher.
type Emitter struct {
	conn *mrabbitmq.RabbitMQConnection
	log  mlog.Logger
}

// NewEmitter returns an Emitter backed by the given RabbitMQ connection.
func NewEmitter(conn *mrabbitmq.RabbitMQConnection, log mlog.Logger) *Emitter {
	return &Emitter{conn: conn, log: log}
}

// EnsureExchange declares the fcrepo.events topic exchange. It is
// idempotent and should be called once during bootstrap.
func (e *Emitter) EnsureExchange(ctx context.Context) error {
	ch, err := e.conn.GetChannel(ctx)
	if err != nil {
		return err
	}

	return ch.ExchangeDeclare(
		Exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

// routingKey builds the "<event_type>.<uid>" topic routing key for entry.
func routingKey(entry txn.ChangelogEntry) string {
	return string(entry.EventType) + "." + entry.UID
}

// notificationFor builds the wire payload for a changelog entry.
func notificationFor(entry txn.ChangelogEntry) Notification {
	return Notification{
		Subject:   entry.URN,
		EventType: string(entry.EventType),
		Time:      entry.Time,
		Types:     entry.Types,
		Actor:     entry.Actor,
	}
}

// Publish sends one message per changelog entry, routed by
// "<event_type>.<uid>" on the fcrepo.events topic exchange.
func (e *Emitter) Publish(ctx context.Context, entry txn.ChangelogEntry) error {
	ch, err := e.conn.GetChannel(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(notificationFor(entry))
	if err != nil {
		return err
	}

	key := routingKey(entry)

	e.log.Infof("publishing event to exchange %s, key %s", Exchange, key)

	return ch.Publish(
		Exchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    entry.Time,
			Body:         body,
		},
	)
}
