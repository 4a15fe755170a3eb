//go:build !kafka
// +build !kafka

package eventbus

import (
	"errors"
	"log/slog"

	"github.com/jwhwang/atmbank/pkg/eventbus"
)

// NewKafkaEventBus is a stub for builds without the kafka tag.
func NewKafkaEventBus(_ []string, _ string, _ *slog.Logger) (eventbus.EventBus, error) {
	return nil, errors.New("kafka event bus not available: rebuild with -tags kafka")
}
