package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/quickmart/fulfillment/internal/domain/catalog"
	dominv "github.com/quickmart/fulfillment/internal/domain/inventory"
	"github.com/quickmart/fulfillment/internal/domain/notification"
)

var (
	ErrUnknownProduct    = dominv.ErrNotFound
	ErrInvalidQuantity   = dominv.ErrInvalidQuantity
	ErrInsufficientStock = dominv.ErrInsufficientStock
)

// Service is the stock ledger: it owns product registration, availability
// checks, reservations and restocks. A reservation that lands below the
// low-stock threshold raises an alert through the Notifier.
type Service struct {
	products  catalog.Repository
	stock     dominv.Repository
	notifier  notification.Notifier
	threshold int
	log       *zap.Logger
}

func NewService(products catalog.Repository, stock dominv.Repository, notifier notification.Notifier, lowStockThreshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		products:  products,
		stock:     stock,
		notifier:  notifier,
		threshold: lowStockThreshold,
		log:       logger.With(zap.String("component", "stock_ledger")),
	}
}

// Add registers the product (first registration wins; products are
// immutable) and increments its stock.
func (s *Service) Add(ctx context.Context, product *catalog.Product, quantity int) error {
	if product == nil {
		return catalog.ErrInvalidID
	}
	if quantity <= 0 {
		s.log.Error("stock_add_rejected",
			zap.String("product_id", product.ID),
			zap.Int("quantity", quantity),
		)
		return ErrInvalidQuantity
	}

	if err := s.products.Save(ctx, product); err != nil {
		return fmt.Errorf("inventory: register product: %w", err)
	}

	item, err := s.stock.Get(ctx, product.ID)
	if errors.Is(err, dominv.ErrNotFound) {
		item, err = dominv.NewItem(product.ID, 0)
	}
	if err != nil {
		return fmt.Errorf("inventory: load stock: %w", err)
	}

	if err := item.Restock(quantity); err != nil {
		return err
	}
	if err := s.stock.Save(ctx, item); err != nil {
		return fmt.Errorf("inventory: save stock: %w", err)
	}

	s.log.Info("stock_added",
		zap.String("product_id", product.ID),
		zap.String("product_name", product.Name),
		zap.Int("quantity", quantity),
		zap.Int("total", item.Quantity),
	)
	return nil
}

// CheckStock returns the current quantity, 0 for unknown products. Read-only.
func (s *Service) CheckStock(ctx context.Context, productID string) int {
	item, err := s.stock.Get(ctx, productID)
	if err != nil {
		return 0
	}
	return item.Quantity
}

// Reserve decrements stock iff enough is available. On success, a remaining
// quantity below the threshold triggers exactly one low-stock alert. On
// failure nothing is mutated.
func (s *Service) Reserve(ctx context.Context, productID string, quantity int) error {
	item, err := s.stock.Get(ctx, productID)
	if errors.Is(err, dominv.ErrNotFound) {
		s.log.Error("reserve_unknown_product", zap.String("product_id", productID))
		return ErrUnknownProduct
	}
	if err != nil {
		return fmt.Errorf("inventory: load stock: %w", err)
	}

	if err := item.Deduct(quantity); err != nil {
		s.log.Error("reserve_rejected",
			zap.String("product_id", productID),
			zap.Int("requested", quantity),
			zap.Int("available", item.Quantity),
			zap.Error(err),
		)
		return err
	}
	if err := s.stock.Save(ctx, item); err != nil {
		return fmt.Errorf("inventory: save stock: %w", err)
	}

	s.log.Info("stock_reserved",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("remaining", item.Quantity),
	)

	if item.Quantity < s.threshold && s.notifier != nil {
		s.notifier.LowStock(ctx, s.productName(ctx, productID), item.Quantity)
	}
	return nil
}

// Release puts previously reserved units back, undoing a reservation after a
// downstream failure.
func (s *Service) Release(ctx context.Context, productID string, quantity int) error {
	item, err := s.stock.Get(ctx, productID)
	if errors.Is(err, dominv.ErrNotFound) {
		s.log.Error("release_unknown_product", zap.String("product_id", productID))
		return ErrUnknownProduct
	}
	if err != nil {
		return fmt.Errorf("inventory: load stock: %w", err)
	}

	if err := item.Restock(quantity); err != nil {
		return err
	}
	if err := s.stock.Save(ctx, item); err != nil {
		return fmt.Errorf("inventory: save stock: %w", err)
	}

	s.log.Info("stock_released",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("total", item.Quantity),
	)
	return nil
}

// Restock increments stock for a known product. Unknown products are logged
// and left untouched.
func (s *Service) Restock(ctx context.Context, productID string, quantity int) error {
	item, err := s.stock.Get(ctx, productID)
	if errors.Is(err, dominv.ErrNotFound) {
		s.log.Error("restock_unknown_product", zap.String("product_id", productID))
		return ErrUnknownProduct
	}
	if err != nil {
		return fmt.Errorf("inventory: load stock: %w", err)
	}

	if err := item.Restock(quantity); err != nil {
		s.log.Error("restock_rejected",
			zap.String("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		return err
	}
	if err := s.stock.Save(ctx, item); err != nil {
		return fmt.Errorf("inventory: save stock: %w", err)
	}

	s.log.Info("stock_restocked",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("total", item.Quantity),
	)
	return nil
}

// UnitPrice returns the catalog price for a product.
func (s *Service) UnitPrice(ctx context.Context, productID string) (int64, error) {
	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return 0, ErrUnknownProduct
	}
	if err != nil {
		return 0, fmt.Errorf("inventory: load product: %w", err)
	}
	return product.UnitPrice, nil
}

// LowStockItems lists products currently under the threshold.
func (s *Service) LowStockItems(ctx context.Context) ([]*dominv.Item, error) {
	items, err := s.stock.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory: list stock: %w", err)
	}
	low := items[:0]
	for _, item := range items {
		if item.Quantity < s.threshold {
			low = append(low, item)
		}
	}
	return low, nil
}

func (s *Service) productName(ctx context.Context, productID string) string {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return productID
	}
	return product.Name
}
