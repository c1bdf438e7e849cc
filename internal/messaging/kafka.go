package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace/internal/config"
	"github.com/spec-kit/marketplace/internal/events"
)

// Producer publishes product lifecycle events to the bus.
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewProducer creates a producer for the product events topic.
func NewProducer(cfg config.KafkaConfig, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.ProductEventsTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
	}
	return &Producer{writer: writer, logger: logger}
}

// PublishProductEvent writes one envelope keyed by product id so envelopes
// for the same product land on the same partition.
func (p *Producer) PublishProductEvent(ctx context.Context, event events.ProductEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal product event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ProductID),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("publish product event: %w", err)
	}

	p.logger.Debug("product event published",
		zap.String("event_type", string(event.Type)),
		zap.String("product_id", event.ProductID))
	return nil
}

// Close releases the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Consumer reads product lifecycle events within a consumer group. One group
// per service gives each service its own cursor with at-least-once delivery.
type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

// NewConsumer creates a group consumer for the product events topic.
func NewConsumer(cfg config.KafkaConfig, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.ProductEventsTopic,
		GroupID:        cfg.GroupID,
		CommitInterval: time.Second,
		MaxBytes:       10e6,
	})
	return &Consumer{reader: reader, logger: logger}
}

// ReadProductEvent blocks until the next envelope arrives or ctx is done.
func (c *Consumer) ReadProductEvent(ctx context.Context) (events.ProductEvent, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return events.ProductEvent{}, err
	}

	var event events.ProductEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return events.ProductEvent{}, fmt.Errorf("decode product event at offset %d: %w", msg.Offset, err)
	}
	return event, nil
}

// Close releases the reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
