package db

import (
	"fmt"
	"strconv"
	"time"
)

// Order status values. Checkout flips an order from pending to paid.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// ID is a snowflake row identifier. It marshals to a decimal string in JSON,
// since the full 63-bit range does not survive a round trip through a
// JavaScript number.
type ID uint64

// String returns the decimal representation of the ID.
func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// MarshalJSON satisfies [encoding/json.Marshaler].
func (id ID) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, id.String()), nil
}

// UnmarshalJSON satisfies [encoding/json.Unmarshaler]. Both quoted and bare
// numbers are accepted.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseID parses the decimal representation of an ID.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return ID(v), nil
}

// Account is a registered user's stored identity and credential. PasswordHash
// is a bcrypt hash, never a reversible encoding of the password.
type Account struct {
	ID           ID
	Name         string
	Email        string
	PasswordHash []byte
}

// Restaurant is a listed restaurant.
type Restaurant struct {
	ID          ID
	Name        string
	Description string
	Image       string
}

// Order is a placed order. Line items live in [OrderItem] rows keyed by the
// order ID.
type Order struct {
	ID        ID
	Username  string
	Total     float64
	Status    string
	CreatedAt time.Time
}

// OrderItem is one line item of an order.
type OrderItem struct {
	OrderID      ID
	RestaurantID ID
	Name         string
	Quantity     int64
	Price        float64
}

// Location is a user's stored delivery location, keyed by username.
type Location struct {
	Username string
	Address  string
	Lat      float64
	Lng      float64
}
