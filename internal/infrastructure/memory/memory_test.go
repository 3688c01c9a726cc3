package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domcatalog "github.com/quickmart/fulfillment/internal/domain/catalog"
	domcustomer "github.com/quickmart/fulfillment/internal/domain/customer"
	domorder "github.com/quickmart/fulfillment/internal/domain/order"
)

func TestCatalogFirstRegistrationWins(t *testing.T) {
	repo := NewCatalogRepository()
	ctx := context.Background()

	first, err := domcatalog.NewProduct("P1", "Laptop", 99999)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := domcatalog.NewProduct("P1", "Laptop Pro", 129999)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	stored, err := repo.FindByID(ctx, "P1")
	require.NoError(t, err)
	require.Equal(t, "Laptop", stored.Name)
	require.Equal(t, int64(99999), stored.UnitPrice)
}

func TestOrderRepositoryClonesOnReadAndWrite(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	o, err := domorder.New("O1", "U1")
	require.NoError(t, err)
	require.NoError(t, o.AddItem("P1", 2))
	require.NoError(t, repo.Save(ctx, o))

	// Mutating the original after Save must not leak into the store.
	require.NoError(t, o.AddItem("P1", 3))

	stored, err := repo.FindByID(ctx, "O1")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"P1": 2}, stored.Items)

	// Mutating the read copy must not leak either.
	stored.Items["P1"] = 99
	again, err := repo.FindByID(ctx, "O1")
	require.NoError(t, err)
	require.Equal(t, 2, again.Items["P1"])
}

func TestOrderRepositoryUpdateRequiresExisting(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	o, err := domorder.New("O1", "U1")
	require.NoError(t, err)
	require.ErrorIs(t, repo.Update(ctx, o), domorder.ErrNotFound)
}

func TestCustomerRepositoryRoundTrip(t *testing.T) {
	repo := NewCustomerRepository()
	ctx := context.Background()

	cust, err := domcustomer.New("U1", "Alice Smith", "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cust))

	stored, err := repo.FindByID(ctx, "U1")
	require.NoError(t, err)
	stored.AppendOrder("O1")
	require.NoError(t, repo.Update(ctx, stored))

	again, err := repo.FindByID(ctx, "U1")
	require.NoError(t, err)
	require.Equal(t, []string{"O1"}, again.OrderIDs)

	_, err = repo.FindByID(ctx, "ghost")
	require.ErrorIs(t, err, domcustomer.ErrNotFound)
}
