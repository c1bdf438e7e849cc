package worker

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace/internal/events"
	"github.com/spec-kit/marketplace/internal/service"
)

// EventSource yields product envelopes from the bus.
type EventSource interface {
	ReadProductEvent(ctx context.Context) (events.ProductEvent, error)
}

// RegisterMediaHandlers binds product lifecycle handlers for the media
// service. Created/updated are accepted as no-op hooks; deletion triggers
// the idempotent cleanup.
func RegisterMediaHandlers(dispatcher *events.Dispatcher, media *service.MediaService, logger *zap.Logger) {
	dispatcher.Register(events.ProductCreated, func(ctx context.Context, event events.ProductEvent) error {
		logger.Info("product created, ready to accept media", zap.String("product_id", event.ProductID))
		return nil
	})
	dispatcher.Register(events.ProductUpdated, func(ctx context.Context, event events.ProductEvent) error {
		logger.Debug("product updated, no media action", zap.String("product_id", event.ProductID))
		return nil
	})
	dispatcher.Register(events.ProductDeleted, func(ctx context.Context, event events.ProductEvent) error {
		return media.DeleteByProductID(ctx, event.ProductID)
	})
}

// ProductEventWorker pumps envelopes from the bus into the dispatcher.
type ProductEventWorker struct {
	source     EventSource
	dispatcher *events.Dispatcher
	logger     *zap.Logger
}

// NewProductEventWorker builds the worker.
func NewProductEventWorker(source EventSource, dispatcher *events.Dispatcher, logger *zap.Logger) *ProductEventWorker {
	return &ProductEventWorker{source: source, dispatcher: dispatcher, logger: logger}
}

// Run consumes until ctx is canceled. Each envelope is dispatched on its own
// goroutine; envelopes for the same product may run concurrently, which the
// idempotent handlers make safe. Read errors are logged and the loop
// continues, so one bad delivery never stops consumption.
func (w *ProductEventWorker) Run(ctx context.Context) {
	w.logger.Info("product event worker started")
	for {
		event, err := w.source.ReadProductEvent(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				w.logger.Info("product event worker stopped")
				return
			}
			w.logger.Error("failed to read product event", zap.Error(err))
			continue
		}

		go w.dispatcher.Dispatch(ctx, event)
	}
}
