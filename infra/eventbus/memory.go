// Package eventbus provides event bus adapters: an in-process bus used by
// default and a Kafka-backed bus behind the kafka build tag.
package eventbus

import (
	"context"
	"sync"

	"github.com/jwhwang/atmbank/pkg/domain"
	"github.com/jwhwang/atmbank/pkg/eventbus"
)

// MemoryEventBus dispatches events synchronously to in-process subscribers.
type MemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]eventbus.HandlerFunc
}

// NewMemoryEventBus creates an empty in-process bus.
func NewMemoryEventBus() *MemoryEventBus {
	return &MemoryEventBus{handlers: make(map[string][]eventbus.HandlerFunc)}
}

var _ eventbus.EventBus = (*MemoryEventBus)(nil)

// Publish implements eventbus.EventBus.
func (b *MemoryEventBus) Publish(ctx context.Context, event domain.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, handler := range b.handlers[event.Type()] {
		handler(ctx, event)
	}
	return nil
}

// Subscribe implements eventbus.EventBus.
func (b *MemoryEventBus) Subscribe(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
