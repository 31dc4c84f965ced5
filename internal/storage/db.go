package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/influxdata/influxdb/pkg/snowflake"

	"github.com/qfoodsapp/qfoods/internal/config"
	"github.com/qfoodsapp/qfoods/internal/storage/db"
)

// DB is a [Store] backed by a SQLite database.
type DB struct {
	ids     *snowflake.Generator
	db      *sql.DB
	queries *db.Queries
}

// NewDB initializes a DB with the given config and logger.
func NewDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	handle, err := db.Open(ctx, logger, cfg.DBFilepath)
	if err != nil {
		return nil, err
	}
	return &DB{
		ids:     snowflake.New(rand.IntN(1023)), //nolint:gosec,mnd // this isn't for crypto
		db:      handle,
		queries: db.New(handle),
	}, nil
}

// Close satisfies the [Store] interface.
func (d *DB) Close() error {
	return d.db.Close()
}

// GetAccountByName satisfies the [Accounts] interface.
func (d *DB) GetAccountByName(ctx context.Context, name string) (db.Account, error) {
	account, err := d.queries.GetAccountByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return account, ErrNotFound
	}
	return account, err
}

// CreateAccount satisfies the [Accounts] interface.
func (d *DB) CreateAccount(ctx context.Context, account db.Account) (db.Account, error) {
	if account.ID == 0 {
		account.ID = db.ID(d.ids.Next())
	}
	switch created, err := d.queries.CreateAccount(ctx, account); {
	case errors.Is(err, sql.ErrNoRows):
		return db.Account{}, ErrAlreadyExists
	default:
		return created, err
	}
}

// ListAccounts satisfies the [Accounts] interface.
func (d *DB) ListAccounts(ctx context.Context, afterName string, limit int32) ([]db.Account, error) {
	return d.queries.ListAccounts(ctx, afterName, int64(limit))
}

// DeleteAccount satisfies the [Accounts] interface.
func (d *DB) DeleteAccount(ctx context.Context, id db.ID) error {
	return d.queries.DeleteAccount(ctx, id)
}

// ListRestaurants satisfies the [Restaurants] interface.
func (d *DB) ListRestaurants(ctx context.Context) ([]db.Restaurant, error) {
	return d.queries.ListRestaurants(ctx)
}

// CreateRestaurant satisfies the [Restaurants] interface.
func (d *DB) CreateRestaurant(ctx context.Context, restaurant db.Restaurant) (db.Restaurant, error) {
	if restaurant.ID == 0 {
		restaurant.ID = db.ID(d.ids.Next())
	}
	return d.queries.CreateRestaurant(ctx, restaurant)
}

// SeedRestaurants satisfies the [Restaurants] interface.
func (d *DB) SeedRestaurants(ctx context.Context) error {
	for _, r := range seedRestaurants {
		if _, err := d.CreateRestaurant(ctx, r); err != nil {
			return fmt.Errorf("failed to seed restaurant %q: %w", r.Name, err)
		}
	}
	return nil
}

// CreateOrder satisfies the [Orders] interface.
func (d *DB) CreateOrder(ctx context.Context, order db.Order, items []db.OrderItem) (db.Order, error) {
	if order.ID == 0 {
		order.ID = db.ID(d.ids.Next())
	}
	if order.Status == "" {
		order.Status = db.OrderStatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return db.Order{}, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	queries := d.queries.WithTx(tx)
	if err := queries.CreateOrder(ctx, order); err != nil {
		return db.Order{}, err
	}
	for _, item := range items {
		item.OrderID = order.ID
		if err := queries.CreateOrderItem(ctx, item); err != nil {
			return db.Order{}, err
		}
	}
	return order, tx.Commit()
}

// ListOrdersByUsername satisfies the [Orders] interface.
func (d *DB) ListOrdersByUsername(ctx context.Context, username string) ([]OrderWithItems, error) {
	orders, err := d.queries.ListOrdersByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	result := make([]OrderWithItems, 0, len(orders))
	for _, order := range orders {
		items, err := d.queries.ListOrderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, OrderWithItems{Order: order, Items: items})
	}
	return result, nil
}

// GetOrder satisfies the [Orders] interface.
func (d *DB) GetOrder(ctx context.Context, id db.ID) (OrderWithItems, error) {
	order, err := d.queries.GetOrder(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderWithItems{}, ErrNotFound
	} else if err != nil {
		return OrderWithItems{}, err
	}
	items, err := d.queries.ListOrderItems(ctx, id)
	if err != nil {
		return OrderWithItems{}, err
	}
	return OrderWithItems{Order: order, Items: items}, nil
}

// UpdateOrderStatus satisfies the [Orders] interface.
func (d *DB) UpdateOrderStatus(ctx context.Context, id db.ID, status string) error {
	updated, err := d.queries.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

// DeleteOrder satisfies the [Orders] interface.
func (d *DB) DeleteOrder(ctx context.Context, id db.ID) error {
	deleted, err := d.queries.DeleteOrder(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// UpsertLocation satisfies the [Locations] interface.
func (d *DB) UpsertLocation(ctx context.Context, location db.Location) error {
	return d.queries.UpsertLocation(ctx, location)
}

// GetLocationByUsername satisfies the [Locations] interface.
func (d *DB) GetLocationByUsername(ctx context.Context, username string) (db.Location, error) {
	location, err := d.queries.GetLocationByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return location, ErrNotFound
	}
	return location, err
}

var _ Store = (*DB)(nil)

// seedRestaurants is the fixed demo restaurant set installed by
// SeedRestaurants and the /init-restaurants endpoint.
var seedRestaurants = []db.Restaurant{
	{Name: "KFC", Description: "Fried Chicken, Rosebank"},
	{Name: "McDonald's", Description: "Fast Food, Sandton"},
	{Name: "Simply Asia", Description: "Thai, Midrand"},
	{Name: "Panarottis", Description: "Pizza, Fourways"},
	{Name: "Piato", Description: "Greek, Melrose Arch"},
	{Name: "Spur", Description: "Grill, Randburg"},
	{Name: "Ocean Basket", Description: "Seafood, Bryanston"},
	{Name: "RocoMamas", Description: "Burgers, Parkhurst"},
	{Name: "Debonairs", Description: "Pizza, Alexandra"},
}
