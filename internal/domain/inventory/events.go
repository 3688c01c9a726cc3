package inventory

import "time"

// LowStockEvent is emitted after a successful reservation leaves a product
// below the configured low-stock threshold.
type LowStockEvent struct {
	ProductName string
	Remaining   int
	OccurredAt  time.Time
}

func (LowStockEvent) EventName() string { return "inventory.low_stock" }

func NewLowStockEvent(productName string, remaining int) LowStockEvent {
	return LowStockEvent{
		ProductName: productName,
		Remaining:   remaining,
		OccurredAt:  time.Now().UTC(),
	}
}
