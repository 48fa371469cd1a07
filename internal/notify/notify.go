package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

const Exchange = "extraction_events"

// Event reports the outcome of one extraction job.
type Event struct {
	JobID       uuid.UUID  `json:"job_id"`
	Status      string     `json:"status"`
	CandidateID *uuid.UUID `json:"candidate_id,omitempty"`
	Error       string     `json:"error,omitempty"`
	At          time.Time  `json:"at"`
}

type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// RabbitNotifier publishes events to a topic exchange with routing key
// "job.<status>".
type RabbitNotifier struct {
	conn *amqp.Connection
}

func NewRabbitNotifier(url string) (*RabbitNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening RabbitMQ channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error declaring exchange %s: %w", Exchange, err)
	}

	return &RabbitNotifier{conn: conn}, nil
}

func (n *RabbitNotifier) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ch, err := n.conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening RabbitMQ channel: %w", err)
	}
	defer ch.Close()

	return ch.Publish(
		Exchange,
		RoutingKey(event),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.At,
			MessageId:    event.JobID.String(),
			Body:         body,
		},
	)
}

func (n *RabbitNotifier) Close() error {
	return n.conn.Close()
}

func RoutingKey(event Event) string {
	return "job." + event.Status
}
