package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type storeFactory func(t *testing.T, catalog []models.Product) Store

// backends runs every case against the in-memory store and against the gorm
// store on a throwaway sqlite file.
var backends = map[string]storeFactory{
	"memory": func(t *testing.T, catalog []models.Product) Store {
		return NewMemoryStore(catalog)
	},
	"gorm": newSQLiteGormStore,
}

func newSQLiteGormStore(t *testing.T, catalog []models.Product) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	s, err := NewGormStore(db)
	require.NoError(t, err)
	require.NoError(t, s.SeedProducts(context.Background(), catalog))
	return s
}

func forEachStore(t *testing.T, catalog []models.Product, fn func(t *testing.T, s Store)) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, open(t, catalog))
		})
	}
}

func line(productID string, qty int, price float64) models.CartItem {
	return models.CartItem{ProductID: productID, ProductName: productID, Quantity: qty, UnitPrice: price}
}

func TestGetProduct(t *testing.T) {
	forEachStore(t, DefaultCatalog(), func(t *testing.T, s Store) {
		ctx := context.Background()

		p, err := s.GetProduct(ctx, "whey-900")
		require.NoError(t, err)
		assert.Equal(t, []string{"chocolate", "vanilla", "strawberry"}, p.Flavors)
		assert.InDelta(t, 149.90, p.Price, 0.001)

		_, err = s.GetProduct(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpsertOverwritesSameProduct(t *testing.T) {
	forEachStore(t, DefaultCatalog(), func(t *testing.T, s Store) {
		ctx := context.Background()

		_, err := s.UpsertItem(ctx, "u1", models.CartItem{ProductID: "whey-900", Quantity: 1, Flavor: "chocolate", UnitPrice: 149.90})
		require.NoError(t, err)
		cart, err := s.UpsertItem(ctx, "u1", models.CartItem{ProductID: "whey-900", Quantity: 2, Flavor: "vanilla", UnitPrice: 149.90})
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, "vanilla", cart.Items[0].Flavor)
		assert.Equal(t, 2, cart.TotalItems)
		assert.InDelta(t, 299.80, cart.TotalAmount, 0.001)

		again, err := s.GetCart(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, again.Items, 1)
		assert.Equal(t, 2, again.Items[0].Quantity)
	})
}

func TestItemsKeepInsertionOrder(t *testing.T) {
	forEachStore(t, nil, func(t *testing.T, s Store) {
		ctx := context.Background()

		for _, id := range []string{"p3", "p1", "p2"} {
			_, err := s.UpsertItem(ctx, "u1", line(id, 1, 1))
			require.NoError(t, err)
		}
		cart, err := s.UpsertItem(ctx, "u1", line("p1", 5, 1))
		require.NoError(t, err)

		var ids []string
		for _, item := range cart.Items {
			ids = append(ids, item.ProductID)
		}
		assert.Equal(t, []string{"p3", "p1", "p2"}, ids)
	})
}

func TestSetQuantityAndRemoveMissing(t *testing.T) {
	forEachStore(t, nil, func(t *testing.T, s Store) {
		ctx := context.Background()

		_, err := s.SetQuantity(ctx, "u1", "p1", 2)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.UpsertItem(ctx, "u1", line("p1", 1, 10))
		require.NoError(t, err)

		cart, err := s.SetQuantity(ctx, "u1", "p1", 4)
		require.NoError(t, err)
		assert.Equal(t, 4, cart.TotalItems)
		assert.InDelta(t, 40.0, cart.Items[0].TotalPrice, 0.001)

		_, err = s.RemoveItem(ctx, "u1", "p2")
		assert.ErrorIs(t, err, ErrNotFound)

		cart, err = s.RemoveItem(ctx, "u1", "p1")
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.NotNil(t, cart.Items)
	})
}

func TestClearCart(t *testing.T) {
	forEachStore(t, nil, func(t *testing.T, s Store) {
		ctx := context.Background()

		cart, err := s.ClearCart(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, cart.Items)

		_, _ = s.UpsertItem(ctx, "u1", line("p1", 2, 10))
		_, _ = s.UpsertItem(ctx, "u1", line("p2", 1, 5))
		cart, err = s.ClearCart(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.TotalItems)
	})
}

func TestMergeCartsSumsAndDeletesSource(t *testing.T) {
	forEachStore(t, nil, func(t *testing.T, s Store) {
		ctx := context.Background()

		_, _ = s.UpsertItem(ctx, "session_x", line("p1", 2, 10))
		_, _ = s.UpsertItem(ctx, "session_x", line("p2", 1, 5))
		_, _ = s.UpsertItem(ctx, "u1", line("p1", 1, 10))

		cart, err := s.MergeCarts(ctx, "session_x", "u1")
		require.NoError(t, err)
		require.Len(t, cart.Items, 2)
		assert.Equal(t, 3, cart.Items[cart.Find("p1")].Quantity)
		assert.Equal(t, 4, cart.TotalItems)
		assert.InDelta(t, 35.0, cart.TotalAmount, 0.001)

		anon, err := s.GetCart(ctx, "session_x")
		require.NoError(t, err)
		assert.Empty(t, anon.Items)

		again, err := s.MergeCarts(ctx, "session_x", "u1")
		require.NoError(t, err)
		assert.Equal(t, cart.TotalItems, again.TotalItems)
	})
}

func TestMergeIntoMissingCartCreatesIt(t *testing.T) {
	forEachStore(t, nil, func(t *testing.T, s Store) {
		ctx := context.Background()

		_, _ = s.UpsertItem(ctx, "session_y", line("p1", 2, 10))
		cart, err := s.MergeCarts(ctx, "session_y", "u2")
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.TotalItems)

		stored, err := s.GetCart(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, 2, stored.TotalItems)
	})
}

func TestCreateOrderClearsCart(t *testing.T) {
	forEachStore(t, nil, func(t *testing.T, s Store) {
		ctx := context.Background()

		cart, err := s.UpsertItem(ctx, "u1", line("p1", 2, 10))
		require.NoError(t, err)
		order, err := s.CreateOrder(ctx, models.NewOrderFromCart("u1", cart, models.CheckoutRequest{PaymentMethod: "card"}, cart.UpdatedAt))
		require.NoError(t, err)
		assert.EqualValues(t, 1, order.ID)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.InDelta(t, 20.0, order.TotalAmount, 0.001)

		after, err := s.GetCart(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, after.Items)

		orders, err := s.ListOrders(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, 2, orders[0].Items[0].Quantity)

		none, err := s.ListOrders(ctx, "u2")
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
