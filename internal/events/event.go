package events

import "time"

// EventType enumerates product lifecycle changes carried over the bus.
type EventType string

const (
	ProductCreated EventType = "PRODUCT_CREATED"
	ProductUpdated EventType = "PRODUCT_UPDATED"
	ProductDeleted EventType = "PRODUCT_DELETED"
)

// ProductEvent is the envelope published once per product state change and
// consumed with at-least-once semantics. Consumers must tolerate redelivery.
type ProductEvent struct {
	Type       EventType `json:"eventType"`
	ProductID  string    `json:"productId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewProductEvent builds an envelope stamped with the current time.
func NewProductEvent(eventType EventType, productID string) ProductEvent {
	return ProductEvent{
		Type:       eventType,
		ProductID:  productID,
		OccurredAt: time.Now().UTC(),
	}
}
