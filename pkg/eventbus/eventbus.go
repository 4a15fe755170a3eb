// Package eventbus defines the publish/subscribe port for domain events.
package eventbus

import (
	"context"

	"github.com/jwhwang/atmbank/pkg/domain"
)

// HandlerFunc consumes one published event.
type HandlerFunc func(ctx context.Context, event domain.Event)

// EventBus is the contract for publishing and subscribing to domain events.
type EventBus interface {
	Publish(ctx context.Context, event domain.Event) error
	Subscribe(eventType string, handler HandlerFunc)
}
