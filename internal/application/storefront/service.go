package storefront

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	apporder "github.com/quickmart/fulfillment/internal/application/order"
	"github.com/quickmart/fulfillment/internal/domain/catalog"
	domcustomer "github.com/quickmart/fulfillment/internal/domain/customer"
)

// Ledger is the storefront's view of the stock ledger.
type Ledger interface {
	Add(ctx context.Context, product *catalog.Product, quantity int) error
	Restock(ctx context.Context, productID string, quantity int) error
}

// Service is the outer storefront surface: customer registration, catalog
// maintenance and order placement. It contains no workflow logic of its own;
// everything funnels into the order workflow and the stock ledger.
type Service struct {
	workflow  *apporder.Service
	ledger    Ledger
	customers domcustomer.Repository
	log       *zap.Logger
}

func NewService(workflow *apporder.Service, ledger Ledger, customers domcustomer.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		workflow:  workflow,
		ledger:    ledger,
		customers: customers,
		log:       logger.With(zap.String("component", "storefront")),
	}
}

// RegisterCustomer registers a customer. Registration is idempotent: an
// already registered ID returns the existing customer.
func (s *Service) RegisterCustomer(ctx context.Context, id, name, email string) (*domcustomer.Customer, error) {
	existing, err := s.customers.FindByID(ctx, id)
	switch {
	case err == nil:
		s.log.Warn("customer_already_registered", zap.String("customer_id", id))
		return existing, nil
	case errors.Is(err, domcustomer.ErrNotFound):
		// continue
	default:
		return nil, fmt.Errorf("storefront: load customer: %w", err)
	}

	cust, err := domcustomer.New(id, name, email)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, cust); err != nil {
		return nil, fmt.Errorf("storefront: save customer: %w", err)
	}

	s.log.Info("customer_registered",
		zap.String("customer_id", id),
		zap.String("name", name),
	)
	return cust, nil
}

// AddProductToCatalog registers a product and stocks it.
func (s *Service) AddProductToCatalog(ctx context.Context, id, name string, unitPrice int64, quantity int) error {
	product, err := catalog.NewProduct(id, name, unitPrice)
	if err != nil {
		return err
	}
	return s.ledger.Add(ctx, product, quantity)
}

// PlaceOrder builds an order from the requested items and processes it.
// Rejected lines (invalid quantity, not enough observed stock) are logged
// and skipped; the rest of the order still goes through the workflow.
func (s *Service) PlaceOrder(ctx context.Context, customerID, orderID string, items map[string]int) (*apporder.ProcessResult, error) {
	o, err := s.workflow.Create(ctx, customerID, orderID)
	if err != nil {
		s.log.Error("order_placement_rejected",
			zap.String("order_id", orderID),
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for pid := range items {
		ids = append(ids, pid)
	}
	sort.Strings(ids)

	for _, pid := range ids {
		if err := s.workflow.AddItem(ctx, o, pid, items[pid]); err != nil {
			s.log.Warn("order_line_skipped",
				zap.String("order_id", o.ID),
				zap.String("product_id", pid),
				zap.Int("quantity", items[pid]),
				zap.Error(err),
			)
		}
	}

	result, err := s.workflow.Process(ctx, o)
	if err != nil {
		s.log.Error("order_not_completed",
			zap.String("order_id", o.ID),
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

// RestockProduct puts quantity back on the shelf for a known product.
func (s *Service) RestockProduct(ctx context.Context, productID string, quantity int) error {
	return s.ledger.Restock(ctx, productID, quantity)
}

// OrderHistory returns the customer's committed order IDs, oldest first.
func (s *Service) OrderHistory(ctx context.Context, customerID string) ([]string, error) {
	history, err := s.workflow.History(ctx, customerID)
	if err != nil {
		s.log.Error("order_history_unavailable",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return nil, err
	}
	return history, nil
}
