package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/evergreenmarket/storefront-service-go/internal/contracts"
)

// RabbitOrderEventsPublisher emits OrderSubmitted envelopes on the topic
// exchange. One channel, single writer.
type RabbitOrderEventsPublisher struct {
	ch  *amqp.Channel
	seq SequenceSource
}

func NewRabbitOrderEventsPublisher(conn *amqp.Connection, seq SequenceSource) (*RabbitOrderEventsPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	// Declare and bind our own queue so a publish never races missing infra.
	queue := orderQueueName(OrderSubmittedRoutingKey)
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", queue, err)
	}
	if err := ch.QueueBind(queue, OrderSubmittedRoutingKey, EventsExchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind %s: %w", queue, err)
	}

	return &RabbitOrderEventsPublisher{ch: ch, seq: seq}, nil
}

func (p *RabbitOrderEventsPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitOrderEventsPublisher) PublishOrderSubmitted(ctx context.Context, payload contracts.OrderSubmittedPayload) error {
	seq, err := p.seq.NextSequence(ctx, payload.SessionID)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ev := contracts.BuildOrderSubmittedEvent(payload, contracts.EnvelopeOptions{
		PartitionKey: payload.SessionID,
		Sequence:     seq,
	})

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderSubmitted: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		EventsExchange,
		OrderSubmittedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.EventID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish OrderSubmitted: %w", err)
	}
	return nil
}
