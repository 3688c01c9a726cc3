package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appinventory "github.com/quickmart/fulfillment/internal/application/inventory"
	apporder "github.com/quickmart/fulfillment/internal/application/order"
	apppayment "github.com/quickmart/fulfillment/internal/application/payment"
	"github.com/quickmart/fulfillment/internal/infrastructure/id"
	"github.com/quickmart/fulfillment/internal/infrastructure/memory"
)

type nopNotifier struct{}

func (nopNotifier) OrderConfirmed(context.Context, string, string) {}
func (nopNotifier) LowStock(context.Context, string, int)         {}

func newShop(t *testing.T, approvePayments bool) (*Service, *appinventory.Service) {
	t.Helper()

	catalogRepo := memory.NewCatalogRepository()
	inventoryRepo := memory.NewInventoryRepository()
	orderRepo := memory.NewOrderRepository()
	customerRepo := memory.NewCustomerRepository()

	ledger := appinventory.NewService(catalogRepo, inventoryRepo, nopNotifier{}, 5, zap.NewNop())
	gateway := apppayment.NewService(func() bool { return approvePayments }, zap.NewNop(), nil)
	workflow := apporder.NewService(ledger, gateway, nopNotifier{}, orderRepo, customerRepo, id.NewUUIDGenerator(), zap.NewNop(), nil, nil)

	return NewService(workflow, ledger, customerRepo, zap.NewNop()), ledger
}

func TestRegisterCustomerIsIdempotent(t *testing.T) {
	shop, _ := newShop(t, true)
	ctx := context.Background()

	first, err := shop.RegisterCustomer(ctx, "U001", "Alice Smith", "alice@example.com")
	require.NoError(t, err)

	second, err := shop.RegisterCustomer(ctx, "U001", "Someone Else", "other@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Alice Smith", second.Name)
}

func TestPlaceOrderUnknownCustomer(t *testing.T) {
	shop, _ := newShop(t, true)

	_, err := shop.PlaceOrder(context.Background(), "ghost", "O1", map[string]int{"P1": 1})
	require.ErrorIs(t, err, apporder.ErrUnknownCustomer)
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	shop, ledger := newShop(t, true)
	ctx := context.Background()

	_, err := shop.RegisterCustomer(ctx, "U001", "Alice Smith", "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, shop.AddProductToCatalog(ctx, "P100", "Laptop", 99999, 10))
	require.NoError(t, shop.AddProductToCatalog(ctx, "P300", "Headphones", 7999, 20))

	result, err := shop.PlaceOrder(ctx, "U001", "O1001", map[string]int{"P100": 1, "P300": 2})
	require.NoError(t, err)
	require.Equal(t, int64(99999+2*7999), result.Total)
	require.Equal(t, 9, ledger.CheckStock(ctx, "P100"))
	require.Equal(t, 18, ledger.CheckStock(ctx, "P300"))

	history, err := shop.OrderHistory(ctx, "U001")
	require.NoError(t, err)
	require.Equal(t, []string{"O1001"}, history)
}

func TestPlaceOrderSkipsRejectedLines(t *testing.T) {
	shop, ledger := newShop(t, true)
	ctx := context.Background()

	_, err := shop.RegisterCustomer(ctx, "U002", "Bob Johnson", "bob@example.com")
	require.NoError(t, err)
	require.NoError(t, shop.AddProductToCatalog(ctx, "P200", "Smartphone", 49999, 15))

	// 16 exceeds observed stock: the line is skipped and the order commits
	// empty without touching the shelf.
	result, err := shop.PlaceOrder(ctx, "U002", "O1002", map[string]int{"P200": 16})
	require.NoError(t, err)
	require.Zero(t, result.Total)
	require.Equal(t, 15, ledger.CheckStock(ctx, "P200"))
}

func TestRestockThenPlaceOrder(t *testing.T) {
	shop, ledger := newShop(t, true)
	ctx := context.Background()

	_, err := shop.RegisterCustomer(ctx, "U002", "Bob Johnson", "bob@example.com")
	require.NoError(t, err)
	require.NoError(t, shop.AddProductToCatalog(ctx, "P200", "Smartphone", 49999, 15))
	require.NoError(t, shop.RestockProduct(ctx, "P200", 10))

	result, err := shop.PlaceOrder(ctx, "U002", "O1003", map[string]int{"P200": 16})
	require.NoError(t, err)
	require.Equal(t, int64(16*49999), result.Total)
	require.Equal(t, 9, ledger.CheckStock(ctx, "P200"))
}

func TestPlaceOrderDeclinedPayment(t *testing.T) {
	shop, ledger := newShop(t, false)
	ctx := context.Background()

	_, err := shop.RegisterCustomer(ctx, "U001", "Alice Smith", "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, shop.AddProductToCatalog(ctx, "P100", "Laptop", 99999, 10))

	_, err = shop.PlaceOrder(ctx, "U001", "O1001", map[string]int{"P100": 2})
	require.ErrorIs(t, err, apporder.ErrPaymentDeclined)
	require.Equal(t, 10, ledger.CheckStock(ctx, "P100"))

	history, err := shop.OrderHistory(ctx, "U001")
	require.NoError(t, err)
	require.Empty(t, history)
}
