package db

import (
	"context"
	"database/sql"
)

// DBTX is the subset of [database/sql] methods the queries need. Both *sql.DB
// and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// New returns Queries bound to the given handle.
func New(dbtx DBTX) *Queries { return &Queries{db: dbtx} }

// Queries holds the hand-written SQL for the storage layer.
type Queries struct {
	db DBTX
}

// WithTx returns a copy of the queries bound to the transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries { return &Queries{db: tx} }

const createAccount = `
INSERT INTO accounts (id, name, email, password_hash)
VALUES (?, ?, ?, ?)
ON CONFLICT DO NOTHING
RETURNING id, name, email, password_hash
`

// CreateAccount inserts an account. On a name or email collision the insert is
// a no-op and [sql.ErrNoRows] is returned; the unique indexes are the
// authoritative uniqueness guard.
func (q *Queries) CreateAccount(ctx context.Context, arg Account) (Account, error) {
	row := q.db.QueryRowContext(ctx, createAccount, arg.ID, arg.Name, arg.Email, arg.PasswordHash)
	var a Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash)
	return a, err
}

const getAccountByName = `
SELECT id, name, email, password_hash FROM accounts WHERE name = ?
`

// GetAccountByName does an exact-match lookup; usernames are not case
// normalized.
func (q *Queries) GetAccountByName(ctx context.Context, name string) (Account, error) {
	row := q.db.QueryRowContext(ctx, getAccountByName, name)
	var a Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash)
	return a, err
}

const listAccounts = `
SELECT id, name, email, password_hash FROM accounts
WHERE name > ? ORDER BY name LIMIT ?
`

// ListAccounts returns accounts ordered by name, paginated by afterName.
func (q *Queries) ListAccounts(ctx context.Context, afterName string, limit int64) ([]Account, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts, afterName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

const deleteAccount = `
DELETE FROM accounts WHERE id = ?
`

// DeleteAccount removes an account by ID.
func (q *Queries) DeleteAccount(ctx context.Context, id ID) error {
	_, err := q.db.ExecContext(ctx, deleteAccount, id)
	return err
}

const createRestaurant = `
INSERT INTO restaurants (id, name, description, image)
VALUES (?, ?, ?, ?)
RETURNING id, name, description, image
`

// CreateRestaurant inserts a restaurant.
func (q *Queries) CreateRestaurant(ctx context.Context, arg Restaurant) (Restaurant, error) {
	row := q.db.QueryRowContext(ctx, createRestaurant, arg.ID, arg.Name, arg.Description, arg.Image)
	var r Restaurant
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Image)
	return r, err
}

const listRestaurants = `
SELECT id, name, description, image FROM restaurants ORDER BY id
`

// ListRestaurants returns all restaurants in insertion order.
func (q *Queries) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	rows, err := q.db.QueryContext(ctx, listRestaurants)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var restaurants []Restaurant
	for rows.Next() {
		var r Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Image); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, rows.Err()
}

const createOrder = `
INSERT INTO orders (id, username, total, status, created_at)
VALUES (?, ?, ?, ?, ?)
`

// CreateOrder inserts an order row. Items are inserted separately within the
// same transaction.
func (q *Queries) CreateOrder(ctx context.Context, arg Order) error {
	_, err := q.db.ExecContext(ctx, createOrder, arg.ID, arg.Username, arg.Total, arg.Status, arg.CreatedAt)
	return err
}

const createOrderItem = `
INSERT INTO order_items (order_id, restaurant_id, name, quantity, price)
VALUES (?, ?, ?, ?, ?)
`

// CreateOrderItem inserts one line item.
func (q *Queries) CreateOrderItem(ctx context.Context, arg OrderItem) error {
	_, err := q.db.ExecContext(ctx, createOrderItem,
		arg.OrderID, arg.RestaurantID, arg.Name, arg.Quantity, arg.Price)
	return err
}

const getOrder = `
SELECT id, username, total, status, created_at FROM orders WHERE id = ?
`

// GetOrder returns a single order row by ID.
func (q *Queries) GetOrder(ctx context.Context, id ID) (Order, error) {
	row := q.db.QueryRowContext(ctx, getOrder, id)
	var o Order
	err := row.Scan(&o.ID, &o.Username, &o.Total, &o.Status, &o.CreatedAt)
	return o, err
}

const listOrdersByUsername = `
SELECT id, username, total, status, created_at FROM orders
WHERE username = ? ORDER BY created_at, id
`

// ListOrdersByUsername returns the user's orders, oldest first.
func (q *Queries) ListOrdersByUsername(ctx context.Context, username string) ([]Order, error) {
	rows, err := q.db.QueryContext(ctx, listOrdersByUsername, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Username, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const listOrderItems = `
SELECT order_id, restaurant_id, name, quantity, price FROM order_items
WHERE order_id = ? ORDER BY rowid
`

// ListOrderItems returns the line items of an order.
func (q *Queries) ListOrderItems(ctx context.Context, orderID ID) ([]OrderItem, error) {
	rows, err := q.db.QueryContext(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.OrderID, &it.RestaurantID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

const updateOrderStatus = `
UPDATE orders SET status = ? WHERE id = ?
`

// UpdateOrderStatus sets the status of an order and reports whether a row was
// updated.
func (q *Queries) UpdateOrderStatus(ctx context.Context, id ID, status string) (bool, error) {
	res, err := q.db.ExecContext(ctx, updateOrderStatus, status, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const deleteOrder = `
DELETE FROM orders WHERE id = ?
`

// DeleteOrder removes an order and, via the cascading foreign key, its items.
// It reports whether a row was deleted.
func (q *Queries) DeleteOrder(ctx context.Context, id ID) (bool, error) {
	res, err := q.db.ExecContext(ctx, deleteOrder, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const upsertLocation = `
INSERT INTO locations (username, address, lat, lng)
VALUES (?, ?, ?, ?)
ON CONFLICT (username) DO UPDATE SET
    address = excluded.address,
    lat = excluded.lat,
    lng = excluded.lng
`

// UpsertLocation creates or replaces the user's stored location.
func (q *Queries) UpsertLocation(ctx context.Context, arg Location) error {
	_, err := q.db.ExecContext(ctx, upsertLocation, arg.Username, arg.Address, arg.Lat, arg.Lng)
	return err
}

const getLocationByUsername = `
SELECT username, address, lat, lng FROM locations WHERE username = ?
`

// GetLocationByUsername returns the user's stored location.
func (q *Queries) GetLocationByUsername(ctx context.Context, username string) (Location, error) {
	row := q.db.QueryRowContext(ctx, getLocationByUsername, username)
	var l Location
	err := row.Scan(&l.Username, &l.Address, &l.Lat, &l.Lng)
	return l, err
}
