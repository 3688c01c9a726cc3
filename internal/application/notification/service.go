package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/quickmart/fulfillment/internal/domain/event"
	dominv "github.com/quickmart/fulfillment/internal/domain/inventory"
	domnotif "github.com/quickmart/fulfillment/internal/domain/notification"
	"github.com/quickmart/fulfillment/internal/observability"
)

// Service implements notification.Notifier by publishing events on the bus.
// Both calls are fire-and-forget: publish failures are logged, never
// propagated to the workflow.
type Service struct {
	publisher event.Publisher
	log       *zap.Logger
	alerts    observability.Counter
}

func NewService(publisher event.Publisher, logger *zap.Logger, lowStockAlerts observability.Counter) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lowStockAlerts == nil {
		lowStockAlerts = observability.NopCounter()
	}
	return &Service{
		publisher: publisher,
		log:       logger.With(zap.String("component", "notifier")),
		alerts:    lowStockAlerts,
	}
}

func (s *Service) OrderConfirmed(ctx context.Context, email, orderID string) {
	s.log.Info("order_confirmation_queued",
		zap.String("email", email),
		zap.String("order_id", orderID),
	)
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, domnotif.NewOrderConfirmedEvent(email, orderID)); err != nil {
		s.log.Warn("order_confirmation_publish_failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}

func (s *Service) LowStock(ctx context.Context, productName string, remaining int) {
	s.alerts.Add(1)
	s.log.Warn("low_stock_alert",
		zap.String("product_name", productName),
		zap.Int("remaining", remaining),
	)
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, dominv.NewLowStockEvent(productName, remaining)); err != nil {
		s.log.Warn("low_stock_publish_failed",
			zap.String("product_name", productName),
			zap.Error(err),
		)
	}
}
