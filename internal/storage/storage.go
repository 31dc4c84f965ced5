// Package storage provides the state management for accounts, restaurants,
// orders, and locations.
package storage

import (
	"context"

	"github.com/qfoodsapp/qfoods/internal/storage/db"
)

const (
	// ErrNotFound is returned when a record cannot be found.
	ErrNotFound Error = "not found"
	// ErrAlreadyExists is returned if a unique account already exists.
	ErrAlreadyExists Error = "already exists"
	// ErrInternal is reserved for callers that need an opaque storage fault
	// value. The [DB] implementation never wraps driver faults in it; they
	// propagate as-is for the HTTP boundary to report generically.
	ErrInternal Error = "internal error"
)

// Error is an error type returned by the storage implementation. Store
// unavailability and other driver faults are never folded into these values;
// they propagate as ordinary errors for the HTTP boundary to report
// generically.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }

// Accounts are the methods on a storage implementation that are responsible
// for accessing and modifying accounts.
type Accounts interface {
	// GetAccountByName returns a single account with the specified username.
	// An [ErrNotFound] is returned if the username does not exist.
	GetAccountByName(ctx context.Context, name string) (db.Account, error)
	// CreateAccount inserts the account, assigning an ID if unset. An
	// [ErrAlreadyExists] error is returned if the username or email is
	// already in use; the store's unique indexes are the authoritative guard.
	CreateAccount(ctx context.Context, account db.Account) (db.Account, error)
	// ListAccounts returns accounts ordered by username, paginated by the
	// given name (if provided) up to the given limit of records.
	ListAccounts(ctx context.Context, afterName string, limit int32) ([]db.Account, error)
	// DeleteAccount removes an account. Note that this is a hard delete; the
	// credential is not recoverable.
	DeleteAccount(ctx context.Context, id db.ID) error
}

// Restaurants are the methods for accessing and creating restaurants.
type Restaurants interface {
	// ListRestaurants returns every restaurant.
	ListRestaurants(ctx context.Context) ([]db.Restaurant, error)
	// CreateRestaurant inserts a restaurant, assigning an ID if unset.
	CreateRestaurant(ctx context.Context, restaurant db.Restaurant) (db.Restaurant, error)
	// SeedRestaurants inserts the built-in demo restaurant set.
	SeedRestaurants(ctx context.Context) error
}

// OrderWithItems bundles an order row with its line items.
type OrderWithItems struct {
	db.Order
	Items []db.OrderItem
}

// Orders are the methods for placing and managing orders.
type Orders interface {
	// CreateOrder inserts the order and its items in one transaction,
	// assigning an ID and the pending status.
	CreateOrder(ctx context.Context, order db.Order, items []db.OrderItem) (db.Order, error)
	// ListOrdersByUsername returns the user's orders with their items.
	ListOrdersByUsername(ctx context.Context, username string) ([]OrderWithItems, error)
	// GetOrder returns a single order with its items. An [ErrNotFound] is
	// returned if the order ID does not exist.
	GetOrder(ctx context.Context, id db.ID) (OrderWithItems, error)
	// UpdateOrderStatus sets the order status. An [ErrNotFound] is returned
	// if the order ID does not exist.
	UpdateOrderStatus(ctx context.Context, id db.ID, status string) error
	// DeleteOrder removes an order and its items. An [ErrNotFound] is
	// returned if the order ID does not exist.
	DeleteOrder(ctx context.Context, id db.ID) error
}

// Locations are the methods for storing and retrieving delivery locations.
type Locations interface {
	// UpsertLocation creates or replaces the user's location. This is a full
	// PUT-style upsert keyed on username.
	UpsertLocation(ctx context.Context, location db.Location) error
	// GetLocationByUsername returns the user's stored location. An
	// [ErrNotFound] is returned if the user has no location.
	GetLocationByUsername(ctx context.Context, username string) (db.Location, error)
}

// Store is the combination interface for all collections.
type Store interface {
	Accounts
	Restaurants
	Orders
	Locations
	// Close releases any resources held by the store. An error is returned if
	// the store cannot be cleanly closed.
	Close() error
}
