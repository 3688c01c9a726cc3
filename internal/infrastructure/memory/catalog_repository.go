package memory

import (
	"context"
	"sync"

	domain "github.com/quickmart/fulfillment/internal/domain/catalog"
)

type CatalogRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		products: make(map[string]*domain.Product),
	}
}

// Save registers a product. Products are immutable: a second save for the
// same ID is ignored so the first registration wins.
func (r *CatalogRepository) Save(ctx context.Context, product *domain.Product) error {
	_ = ctx
	if product == nil || product.ID == "" {
		return domain.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return nil
	}
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProduct(product), nil
}

func cloneProduct(product *domain.Product) *domain.Product {
	if product == nil {
		return nil
	}
	clone := *product
	return &clone
}
