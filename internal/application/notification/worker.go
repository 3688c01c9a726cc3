package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/quickmart/fulfillment/internal/domain/event"
	dominv "github.com/quickmart/fulfillment/internal/domain/inventory"
	domnotif "github.com/quickmart/fulfillment/internal/domain/notification"
	"github.com/quickmart/fulfillment/internal/pkg/logging"
)

// Worker consumes notification events off the bus and "delivers" them.
// Delivery is simulated: it always succeeds and only produces log output.
type Worker struct {
	subscriber event.Subscriber
}

func NewWorker(subscriber event.Subscriber) *Worker {
	return &Worker{subscriber: subscriber}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domnotif.OrderConfirmedEvent{}.EventName(), w.handleOrderConfirmed)
	w.subscriber.Subscribe(dominv.LowStockEvent{}.EventName(), w.handleLowStock)
}

func (w *Worker) handleOrderConfirmed(ctx context.Context, e event.Event) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "notification_worker"))

	evt, ok := e.(domnotif.OrderConfirmedEvent)
	if !ok {
		return nil
	}

	logger.Info("order_confirmation_sent",
		zap.String("email", evt.Email),
		zap.String("order_id", evt.OrderID),
	)
	return nil
}

func (w *Worker) handleLowStock(ctx context.Context, e event.Event) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "notification_worker"))

	evt, ok := e.(dominv.LowStockEvent)
	if !ok {
		return nil
	}

	logger.Warn("low_stock_notice_sent",
		zap.String("product_name", evt.ProductName),
		zap.Int("remaining", evt.Remaining),
	)
	return nil
}
