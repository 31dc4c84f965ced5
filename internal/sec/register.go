package sec

import (
	"context"
	"errors"

	"github.com/qfoodsapp/qfoods/internal/storage"
	"github.com/qfoodsapp/qfoods/internal/storage/db"
)

// Register validates signup input, hashes the password, and persists a new
// account. A [storage.ErrAlreadyExists] is returned if the username or email
// is taken. The username lookup before the insert is a fast path only; two
// concurrent signups for the same name may both pass it, and the store's
// unique index decides the winner at insert time.
func Register(ctx context.Context, store storage.Accounts, username, email, password string) (db.Account, error) {
	if username == "" || email == "" || password == "" {
		return db.Account{}, ErrMissingFields
	}

	if _, err := store.GetAccountByName(ctx, username); err == nil {
		return db.Account{}, storage.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return db.Account{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return db.Account{}, err
	}
	return store.CreateAccount(ctx, db.Account{
		Name:         username,
		Email:        email,
		PasswordHash: hash,
	})
}
