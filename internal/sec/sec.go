// Package sec provides the signup and login flows and the credential
// primitives behind them.
//
// # Authentication
//
// Login uses HTTP Basic Auth: credentials are carried in the Authorization
// header and validated against bcrypt password hashes stored in the database.
// Passwords are never persisted in a reversible encoding.
//
// IMPORTANT: Basic Auth transmits credentials in base64 encoding (not
// encrypted). TLS must be used in production to protect credentials in
// transit.
//
// # Components
//
//   - [Register]: Validates signup input and persists a new account
//   - [Authenticate]: Validates Basic Auth credentials against the account store
//   - [HashPassword], [ComparePassword]: bcrypt password hashing utilities
package sec

const (
	// ErrMissingFields is returned by [Register] when a required signup field
	// is absent or empty.
	ErrMissingFields Error = "all fields are required"
	// ErrMalformedCredentials is returned by [Authenticate] when the
	// Authorization header is absent or not a valid Basic credential. The
	// store is never consulted in this case.
	ErrMalformedCredentials Error = "missing or invalid authorization header"
	// ErrInvalidCredentials is returned by [Authenticate] for an unknown
	// username or a mismatched password. The two cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials Error = "invalid username or password"
)

// Error is an error type returned by the signup and login flows.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }
