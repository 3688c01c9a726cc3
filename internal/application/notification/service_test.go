package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quickmart/fulfillment/internal/domain/event"
	dominv "github.com/quickmart/fulfillment/internal/domain/inventory"
	domnotif "github.com/quickmart/fulfillment/internal/domain/notification"
	"github.com/quickmart/fulfillment/internal/observability"
)

type recordingPublisher struct {
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) error {
	p.events = append(p.events, e)
	return nil
}

type countingCounter struct{ n int }

func (c *countingCounter) Add(_ float64, _ ...observability.Label) { c.n++ }

func TestOrderConfirmedPublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(pub, zap.NewNop(), nil)

	svc.OrderConfirmed(context.Background(), "alice@example.com", "O1001")

	require.Len(t, pub.events, 1)
	evt, ok := pub.events[0].(domnotif.OrderConfirmedEvent)
	require.True(t, ok)
	require.Equal(t, "alice@example.com", evt.Email)
	require.Equal(t, "O1001", evt.OrderID)
}

func TestLowStockPublishesEventAndCounts(t *testing.T) {
	pub := &recordingPublisher{}
	alerts := &countingCounter{}
	svc := NewService(pub, zap.NewNop(), alerts)

	svc.LowStock(context.Background(), "Laptop", 3)

	require.Equal(t, 1, alerts.n)
	require.Len(t, pub.events, 1)
	evt, ok := pub.events[0].(dominv.LowStockEvent)
	require.True(t, ok)
	require.Equal(t, "Laptop", evt.ProductName)
	require.Equal(t, 3, evt.Remaining)
}

func TestNotifierWithoutPublisherStillWorks(t *testing.T) {
	svc := NewService(nil, zap.NewNop(), nil)

	// Fire-and-forget: no publisher, no panic, nothing propagated.
	svc.OrderConfirmed(context.Background(), "alice@example.com", "O1001")
	svc.LowStock(context.Background(), "Laptop", 1)
}
