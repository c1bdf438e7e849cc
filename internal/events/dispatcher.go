package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Handler applies the side effect for one envelope.
type Handler func(context.Context, ProductEvent) error

// Dispatcher routes envelopes to handlers by event type. A processing
// failure never reaches the caller; the message-delivery boundary must not
// be torn down by a bad envelope.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType]Handler
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher instance.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[EventType]Handler),
		logger:   logger,
	}
}

// Register binds a handler to an event type, replacing any previous binding.
func (d *Dispatcher) Register(eventType EventType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = handler
}

// Dispatch processes exactly one envelope. Unknown event types are logged
// and ignored; handler errors and panics are recorded and swallowed. There
// is no retry or dead-letter routing here; redelivery is the transport's
// concern.
func (d *Dispatcher) Dispatch(ctx context.Context, event ProductEvent) {
	d.mu.RLock()
	handler, ok := d.handlers[event.Type]
	d.mu.RUnlock()

	if !ok {
		d.logger.Warn("unknown event type, ignoring",
			zap.String("event_type", string(event.Type)),
			zap.String("product_id", event.ProductID))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic while processing event",
				zap.Any("panic", r),
				zap.String("event_type", string(event.Type)),
				zap.String("product_id", event.ProductID))
		}
	}()

	if err := handler(ctx, event); err != nil {
		d.logger.Error("event processing failed",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("product_id", event.ProductID))
	}
}
