package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	first, stopFirst := bus.Subscribe()
	defer stopFirst()
	second, stopSecond := bus.Subscribe()
	defer stopSecond()

	bus.Publish(Event{ID: "e1", Type: TypeQuoteCreated})

	for _, ch := range []<-chan Event{first, second} {
		select {
		case e := <-ch:
			require.Equal(t, "e1", e.ID)
			require.Equal(t, TypeQuoteCreated, e.Type)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	ch, unsubscribe := bus.Subscribe()
	unsubscribe()

	_, open := <-ch
	require.False(t, open)

	// Publishing after the only subscriber left must not panic.
	bus.Publish(Event{ID: "e2", Type: TypeQuoteStatusChanged})
}

func TestBusDropsInsteadOfBlocking(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	_, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	// Nobody drains the channel; publishing past its capacity must
	// return promptly instead of stalling the publisher.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			bus.Publish(Event{ID: "flood", Type: TypeQuoteCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
