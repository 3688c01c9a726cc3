package notification

import "context"

// Notifier surfaces events to the outside world. Both calls are
// fire-and-forget: delivery failures are logged by implementations and never
// reported back to the caller.
type Notifier interface {
	OrderConfirmed(ctx context.Context, email, orderID string)
	LowStock(ctx context.Context, productName string, remaining int)
}
