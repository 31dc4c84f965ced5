package storage

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qfoodsapp/qfoods/internal/config"
	"github.com/qfoodsapp/qfoods/internal/storage/db"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := config.Default()
	cfg.DBFilepath = filepath.Join(t.TempDir(), "db.sqlite")
	store, err := NewDB(t.Context(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAccounts(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)

	account, err := store.CreateAccount(t.Context(), db.Account{
		Name:         "alice",
		Email:        "a@x.com",
		PasswordHash: []byte("hash"),
	})
	require.NoError(t, err)
	assert.NotZero(t, account.ID)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := store.CreateAccount(t.Context(), db.Account{
			Name:         "alice",
			Email:        "b@y.com",
			PasswordHash: []byte("hash"),
		})
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := store.CreateAccount(t.Context(), db.Account{
			Name:         "bob",
			Email:        "a@x.com",
			PasswordHash: []byte("hash"),
		})
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("get by name", func(t *testing.T) {
		actual, err := store.GetAccountByName(t.Context(), "alice")
		require.NoError(t, err)
		assert.Equal(t, account, actual)

		_, err = store.GetAccountByName(t.Context(), "nobody")
		require.ErrorIs(t, err, ErrNotFound)

		// exact match, no case normalization
		_, err = store.GetAccountByName(t.Context(), "Alice")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list and delete", func(t *testing.T) {
		accounts, err := store.ListAccounts(t.Context(), "", 10)
		require.NoError(t, err)
		assert.Len(t, accounts, 1)

		require.NoError(t, store.DeleteAccount(t.Context(), account.ID))
		_, err = store.GetAccountByName(t.Context(), "alice")
		require.ErrorIs(t, err, ErrNotFound)

		// the name becomes free for a new registration
		_, err = store.CreateAccount(t.Context(), db.Account{
			Name:         "alice",
			Email:        "a@x.com",
			PasswordHash: []byte("hash"),
		})
		require.NoError(t, err)
	})
}

func TestRestaurants(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)

	first, err := store.CreateRestaurant(t.Context(), db.Restaurant{
		Name:        "Chez Test",
		Description: "Bistro",
		Image:       "https://img.example/chez.png",
	})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	restaurants, err := store.ListRestaurants(t.Context())
	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, first, restaurants[0])

	require.NoError(t, store.SeedRestaurants(t.Context()))
	restaurants, err = store.ListRestaurants(t.Context())
	require.NoError(t, err)
	assert.Len(t, restaurants, 10)
}

func TestOrders(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)

	items := []db.OrderItem{
		{RestaurantID: 42, Name: "Burger", Quantity: 2, Price: 55},
		{RestaurantID: 42, Name: "Fries", Quantity: 1, Price: 25},
	}
	order, err := store.CreateOrder(t.Context(), db.Order{
		Username: "alice",
		Total:    135,
	}, items)
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, db.OrderStatusPending, order.Status)
	assert.WithinDuration(t, time.Now(), order.CreatedAt, time.Minute)

	t.Run("get with items", func(t *testing.T) {
		actual, err := store.GetOrder(t.Context(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, actual.ID)
		assert.Equal(t, "alice", actual.Username)
		require.Len(t, actual.Items, 2)
		assert.Equal(t, "Burger", actual.Items[0].Name)
		assert.Equal(t, order.ID, actual.Items[0].OrderID)

		_, err = store.GetOrder(t.Context(), order.ID+1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list by username", func(t *testing.T) {
		orders, err := store.ListOrdersByUsername(t.Context(), "alice")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Len(t, orders[0].Items, 2)

		orders, err = store.ListOrdersByUsername(t.Context(), "nobody")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("update status", func(t *testing.T) {
		require.NoError(t, store.UpdateOrderStatus(t.Context(), order.ID, db.OrderStatusPaid))
		actual, err := store.GetOrder(t.Context(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, db.OrderStatusPaid, actual.Status)

		err = store.UpdateOrderStatus(t.Context(), order.ID+1, db.OrderStatusPaid)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete cascades items", func(t *testing.T) {
		require.NoError(t, store.DeleteOrder(t.Context(), order.ID))
		_, err := store.GetOrder(t.Context(), order.ID)
		require.ErrorIs(t, err, ErrNotFound)

		require.ErrorIs(t, store.DeleteOrder(t.Context(), order.ID), ErrNotFound)
	})
}

func TestLocations(t *testing.T) {
	t.Parallel()
	store := newTestDB(t)

	_, err := store.GetLocationByUsername(t.Context(), "alice")
	require.ErrorIs(t, err, ErrNotFound)

	loc := db.Location{
		Username: "alice",
		Address:  "1 Main Rd, Rosebank",
		Lat:      -26.14,
		Lng:      28.04,
	}
	require.NoError(t, store.UpsertLocation(t.Context(), loc))

	actual, err := store.GetLocationByUsername(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, loc, actual)

	// an upsert for the same username replaces, never duplicates
	loc.Address = "2 Side St, Sandton"
	require.NoError(t, store.UpsertLocation(t.Context(), loc))

	actual, err = store.GetLocationByUsername(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, loc, actual)
}
