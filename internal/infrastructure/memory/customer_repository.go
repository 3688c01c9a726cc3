package memory

import (
	"context"
	"sync"

	domain "github.com/quickmart/fulfillment/internal/domain/customer"
)

type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	_ = ctx
	if customer == nil || customer.ID == "" {
		return domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers[customer.ID] = customer.Clone()
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return customer.Clone(), nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	_ = ctx
	if customer == nil || customer.ID == "" {
		return domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[customer.ID]; !exists {
		return domain.ErrNotFound
	}
	r.customers[customer.ID] = customer.Clone()
	return nil
}
