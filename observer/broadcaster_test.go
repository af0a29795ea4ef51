package observer

import (
	"testing"
	"time"

	"github.com/olivia-oracle/olivia/event"
	"github.com/stretchr/testify/require"
)

func TestBroadcasterDeliversToSubscribers(t *testing.T) {
	b := NewBroadcaster(nil)
	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	id, err := event.ParseID("/time/2025-01-01T00:00:00.occur")
	require.NoError(t, err)

	b.Publish(Notification{Kind: EventCreated, ID: id})

	select {
	case n := <-ch:
		require.Equal(t, EventCreated, n.Kind)
		require.Equal(t, id.String(), n.ID.String())
	case <-time.After(time.Second):
		t.Fatal("did not receive notification")
	}
}

func TestBroadcasterNeverBlocksOnFullSubscriber(t *testing.T) {
	b := NewBroadcaster(nil)
	_, unsubscribe := b.Subscribe()
	defer unsubscribe()

	id, err := event.ParseID("/time/2025-01-01T00:00:00.occur")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			b.Publish(Notification{Kind: EventAttested, ID: id})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber channel")
	}
}

func TestNilBroadcasterPublishIsNoop(t *testing.T) {
	var b *Broadcaster
	require.NotPanics(t, func() {
		b.Publish(Notification{})
	})
}
