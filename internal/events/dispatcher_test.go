package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDispatchRoutesByEventType(t *testing.T) {
	dispatcher := NewDispatcher(zap.NewNop())

	var deleted []string
	var created int
	dispatcher.Register(ProductDeleted, func(_ context.Context, event ProductEvent) error {
		deleted = append(deleted, event.ProductID)
		return nil
	})
	dispatcher.Register(ProductCreated, func(_ context.Context, _ ProductEvent) error {
		created++
		return nil
	})

	dispatcher.Dispatch(context.Background(), NewProductEvent(ProductDeleted, "prod-123"))
	dispatcher.Dispatch(context.Background(), NewProductEvent(ProductCreated, "prod-456"))
	dispatcher.Dispatch(context.Background(), NewProductEvent(ProductUpdated, "prod-789"))

	assert.Equal(t, []string{"prod-123"}, deleted)
	assert.Equal(t, 1, created)
}

func TestDispatchIgnoresUnknownEventType(t *testing.T) {
	dispatcher := NewDispatcher(zap.NewNop())

	assert.NotPanics(t, func() {
		dispatcher.Dispatch(context.Background(), ProductEvent{Type: "PRODUCT_EXPLODED", ProductID: "prod-1"})
	})
}

func TestDispatchSwallowsHandlerError(t *testing.T) {
	dispatcher := NewDispatcher(zap.NewNop())

	var processed []string
	dispatcher.Register(ProductDeleted, func(_ context.Context, event ProductEvent) error {
		if event.ProductID == "prod-bad" {
			return errors.New("deletion failed")
		}
		processed = append(processed, event.ProductID)
		return nil
	})

	// A failing envelope must not prevent the next one from being handled.
	dispatcher.Dispatch(context.Background(), NewProductEvent(ProductDeleted, "prod-bad"))
	dispatcher.Dispatch(context.Background(), NewProductEvent(ProductDeleted, "prod-good"))

	assert.Equal(t, []string{"prod-good"}, processed)
}

func TestDispatchContainsHandlerPanic(t *testing.T) {
	dispatcher := NewDispatcher(zap.NewNop())

	dispatcher.Register(ProductDeleted, func(_ context.Context, _ ProductEvent) error {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		dispatcher.Dispatch(context.Background(), NewProductEvent(ProductDeleted, "prod-1"))
	})
}
