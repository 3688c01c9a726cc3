package memory

import (
	"context"
	"sync"

	domain "github.com/quickmart/fulfillment/internal/domain/order"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	_ = ctx
	if order == nil || order.ID == "" {
		return domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	_ = ctx
	if order == nil || order.ID == "" {
		return domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; !exists {
		return domain.ErrNotFound
	}
	r.orders[order.ID] = order.Clone()
	return nil
}
