package eventbus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraeventbus "github.com/jwhwang/atmbank/infra/eventbus"
	"github.com/jwhwang/atmbank/pkg/domain"
)

func TestMemoryEventBusDispatchesByType(t *testing.T) {
	t.Parallel()
	bus := infraeventbus.NewMemoryEventBus()

	var got []domain.Event
	bus.Subscribe("LedgerRecordCommitted", func(_ context.Context, event domain.Event) {
		got = append(got, event)
	})
	bus.Subscribe("SomethingElse", func(_ context.Context, event domain.Event) {
		t.Error("handler for a different event type must not fire")
	})

	event := domain.LedgerRecordCommitted{
		AccountID: 1,
		UserID:    2,
		Record:    domain.LedgerRecord{RecordIndex: 3, Action: domain.ActionDeposit, Balance: 100},
	}
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, got, 1)
	assert.Equal(t, event, got[0])
}

func TestMemoryEventBusNoSubscribers(t *testing.T) {
	t.Parallel()
	bus := infraeventbus.NewMemoryEventBus()
	require.NoError(t, bus.Publish(context.Background(), domain.LedgerRecordCommitted{}))
}
