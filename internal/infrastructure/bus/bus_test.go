package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quickmart/fulfillment/internal/domain/event"
)

type testEvent struct{ payload string }

func (testEvent) EventName() string { return "test.event" }

func TestPublishDeliversToSubscriber(t *testing.T) {
	b := New(zap.NewNop())
	received := make(chan event.Event, 1)
	b.Subscribe("test.event", func(_ context.Context, e event.Event) error {
		received <- e
		return nil
	})

	b.Start(context.Background())
	defer b.Stop(context.Background())

	require.NoError(t, b.Publish(context.Background(), testEvent{payload: "hello"}))

	select {
	case e := <-received:
		require.Equal(t, testEvent{payload: "hello"}, e)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestFanoutReachesAllSubscribers(t *testing.T) {
	b := New(zap.NewNop())
	first := make(chan struct{}, 1)
	second := make(chan struct{}, 1)
	b.Subscribe("test.event", func(context.Context, event.Event) error {
		first <- struct{}{}
		return nil
	})
	b.Subscribe("test.event", func(context.Context, event.Event) error {
		second <- struct{}{}
		return nil
	})

	b.Start(context.Background())
	defer b.Stop(context.Background())

	require.NoError(t, b.Publish(context.Background(), testEvent{}))

	for _, ch := range []chan struct{}{first, second} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("a subscriber did not receive the event")
		}
	}
}

func TestHandlerPanicDoesNotKillDispatch(t *testing.T) {
	b := New(zap.NewNop())
	received := make(chan struct{}, 1)
	b.Subscribe("test.event", func(context.Context, event.Event) error {
		panic("boom")
	})
	b.Subscribe("test.event", func(context.Context, event.Event) error {
		received <- struct{}{}
		return nil
	})

	b.Start(context.Background())
	defer b.Stop(context.Background())

	require.NoError(t, b.Publish(context.Background(), testEvent{}))

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch stopped after a handler panic")
	}
}

func TestHandlerErrorIsSwallowed(t *testing.T) {
	b := New(zap.NewNop())
	done := make(chan struct{}, 2)
	b.Subscribe("test.event", func(context.Context, event.Event) error {
		done <- struct{}{}
		return errors.New("delivery failed")
	})

	b.Start(context.Background())
	defer b.Stop(context.Background())

	require.NoError(t, b.Publish(context.Background(), testEvent{}))
	require.NoError(t, b.Publish(context.Background(), testEvent{}))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler was not invoked again after an error")
		}
	}
}

func TestPublishNilEventIsNoop(t *testing.T) {
	b := New(zap.NewNop())
	require.NoError(t, b.Publish(context.Background(), nil))
}
