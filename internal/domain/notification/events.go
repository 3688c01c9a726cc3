package notification

import "time"

// OrderConfirmedEvent is emitted once an order has committed.
type OrderConfirmedEvent struct {
	Email      string
	OrderID    string
	OccurredAt time.Time
}

func (OrderConfirmedEvent) EventName() string { return "notification.order_confirmed" }

func NewOrderConfirmedEvent(email, orderID string) OrderConfirmedEvent {
	return OrderConfirmedEvent{
		Email:      email,
		OrderID:    orderID,
		OccurredAt: time.Now().UTC(),
	}
}
