package contracts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evergreenmarket/storefront-service-go/internal/checkout"
)

const (
	OrderSubmittedEventName           = "OrderSubmitted"
	OrderSubmittedEventVersion        = 1
	OrderSubmittedEnvelopedSchemaPath = "contracts/events/order/OrderSubmitted.v1.enveloped.schema.json"
	StorefrontServiceProducer         = "storefront-service"
)

// EventEnvelope is the common envelope for all events emitted by this
// service. It is generic to allow strongly typed payloads per event.
type EventEnvelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CausationID   string    `json:"causationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      int64     `json:"sequence"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
	Payload       T         `json:"payload"`
}

// Validate ensures the envelope carries the expected event identity.
func (e EventEnvelope[T]) Validate(expectedName string, expectedVersion int) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName: %s", e.EventName)
	}
	if e.EventVersion != expectedVersion {
		return fmt.Errorf("unexpected eventVersion: %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	return nil
}

// OrderLine mirrors a cart line at the moment the order was placed.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// OrderTotals is the price breakdown the customer saw on the review step.
type OrderTotals struct {
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	ShippingFee float64 `json:"shippingFee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// OrderSubmittedPayload is the completed order handed to the external
// order-processing system.
type OrderSubmittedPayload struct {
	OrderID         string           `json:"orderId"`
	SessionID       string           `json:"sessionId"`
	Items           []OrderLine      `json:"items"`
	ShippingAddress checkout.Address `json:"shippingAddress"`
	BillingAddress  checkout.Address `json:"billingAddress"`
	ShippingMethod  string           `json:"shippingMethod"`
	Totals          OrderTotals      `json:"totals"`
	Timestamp       time.Time        `json:"timestamp"`
}

type EnvelopeOptions struct {
	PartitionKey  string
	Sequence      int64
	Producer      string
	SchemaPath    string
	CorrelationID string
	CausationID   string
	EventID       string
	OccurredAt    time.Time
}

// BuildOrderSubmittedEvent wraps the payload in a versioned envelope,
// filling defaults for any option left zero.
func BuildOrderSubmittedEvent(p OrderSubmittedPayload, opts EnvelopeOptions) EventEnvelope[OrderSubmittedPayload] {
	eventID := opts.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	occurredAt := opts.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	schemaPath := opts.SchemaPath
	if schemaPath == "" {
		schemaPath = OrderSubmittedEnvelopedSchemaPath
	}

	producer := opts.Producer
	if producer == "" {
		producer = StorefrontServiceProducer
	}

	if p.Timestamp.IsZero() {
		p.Timestamp = occurredAt
	}

	return EventEnvelope[OrderSubmittedPayload]{
		EventName:     OrderSubmittedEventName,
		EventVersion:  OrderSubmittedEventVersion,
		EventID:       eventID,
		CorrelationID: opts.CorrelationID,
		CausationID:   opts.CausationID,
		Producer:      producer,
		PartitionKey:  opts.PartitionKey,
		Sequence:      opts.Sequence,
		OccurredAt:    occurredAt,
		Schema:        schemaPath,
		Payload:       p,
	}
}
