package sec

import (
	"context"
	"errors"
	"net/http"

	"github.com/qfoodsapp/qfoods/internal/storage"
	"github.com/qfoodsapp/qfoods/internal/storage/db"
)

// Authenticate resolves the logged in user from req. Credentials are carried
// in the Authorization header using the Basic scheme; [http.Request.BasicAuth]
// splits the decoded pair on the first colon, so passwords containing colons
// round-trip correctly. Login mutates no state.
func Authenticate(ctx context.Context, req *http.Request, store storage.Accounts) (db.Account, error) {
	username, password, ok := req.BasicAuth()
	if !ok {
		return db.Account{}, ErrMalformedCredentials
	}
	account, err := store.GetAccountByName(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return db.Account{}, ErrInvalidCredentials
	} else if err != nil {
		return db.Account{}, err
	}
	if err = ComparePassword(password, account.PasswordHash); err != nil {
		return db.Account{}, ErrInvalidCredentials
	}
	return account, nil
}
