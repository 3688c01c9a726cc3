package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("catalog: product not found")
	ErrInvalidID    = errors.New("catalog: product id is required")
	ErrInvalidPrice = errors.New("catalog: unit price must be zero or greater")
)

// Product is a catalog entry. UnitPrice is in minor currency units.
// Products are immutable after registration.
type Product struct {
	ID        string
	Name      string
	UnitPrice int64
	CreatedAt time.Time
}

func NewProduct(id, name string, unitPrice int64) (*Product, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	if unitPrice < 0 {
		return nil, ErrInvalidPrice
	}
	return &Product{
		ID:        id,
		Name:      name,
		UnitPrice: unitPrice,
		CreatedAt: time.Now().UTC(),
	}, nil
}
