package order

import "context"

type IDGenerator interface {
	NewID() string
}

// StockLedger is the workflow's view of the inventory component.
type StockLedger interface {
	CheckStock(ctx context.Context, productID string) int
	Reserve(ctx context.Context, productID string, quantity int) error
	Release(ctx context.Context, productID string, quantity int) error
	UnitPrice(ctx context.Context, productID string) (int64, error)
}
