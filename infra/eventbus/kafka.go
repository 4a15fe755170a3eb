//go:build kafka
// +build kafka

package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/jwhwang/atmbank/pkg/domain"
	"github.com/jwhwang/atmbank/pkg/eventbus"
)

// KafkaEventBus publishes domain events to a Kafka topic and also dispatches
// them to in-process subscribers, so local handlers keep working when the
// deployment adds downstream consumers.
type KafkaEventBus struct {
	writer *kafka.Writer
	topic  string
	logger *slog.Logger

	mu       sync.RWMutex
	handlers map[string][]eventbus.HandlerFunc
}

// NewKafkaEventBus creates a bus writing to topicPrefix on the given brokers.
func NewKafkaEventBus(brokers []string, topicPrefix string, logger *slog.Logger) (*KafkaEventBus, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topicPrefix,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	return &KafkaEventBus{
		writer:   writer,
		topic:    topicPrefix,
		logger:   logger,
		handlers: make(map[string][]eventbus.HandlerFunc),
	}, nil
}

var _ eventbus.EventBus = (*KafkaEventBus)(nil)

// Publish implements eventbus.EventBus. Messages are keyed by event type so
// consumers see per-type ordering.
func (b *KafkaEventBus) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Type()),
		Value: payload,
	}); err != nil {
		b.logger.Error("kafka publish failed", "event_type", event.Type(), "error", err)
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, handler := range b.handlers[event.Type()] {
		handler(ctx, event)
	}
	return nil
}

// Subscribe implements eventbus.EventBus.
func (b *KafkaEventBus) Subscribe(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Close flushes and closes the underlying writer.
func (b *KafkaEventBus) Close() error {
	return b.writer.Close()
}
