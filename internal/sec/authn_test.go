package sec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qfoodsapp/qfoods/internal/storage"
	"github.com/qfoodsapp/qfoods/internal/storage/db"
)

// fakeAccounts is an in-memory [storage.Accounts] that counts lookups.
type fakeAccounts struct {
	accounts map[string]db.Account
	lookups  int
	fail     error
}

func (f *fakeAccounts) GetAccountByName(_ context.Context, name string) (db.Account, error) {
	f.lookups++
	if f.fail != nil {
		return db.Account{}, f.fail
	}
	account, ok := f.accounts[name]
	if !ok {
		return db.Account{}, storage.ErrNotFound
	}
	return account, nil
}

func (f *fakeAccounts) CreateAccount(_ context.Context, account db.Account) (db.Account, error) {
	if f.fail != nil {
		return db.Account{}, f.fail
	}
	if _, ok := f.accounts[account.Name]; ok {
		return db.Account{}, storage.ErrAlreadyExists
	}
	if f.accounts == nil {
		f.accounts = map[string]db.Account{}
	}
	f.accounts[account.Name] = account
	return account, nil
}

func (f *fakeAccounts) ListAccounts(context.Context, string, int32) ([]db.Account, error) {
	return nil, nil
}

func (f *fakeAccounts) DeleteAccount(context.Context, db.ID) error { return nil }

func newFakeAccounts(t *testing.T, username, password string) *fakeAccounts {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &fakeAccounts{accounts: map[string]db.Account{
		username: {ID: 1, Name: username, Email: username + "@x.com", PasswordHash: hash},
	}}
}

func loginRequest(username, password string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.SetBasicAuth(username, password)
	return req
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		store := newFakeAccounts(t, "alice", "pw1")
		account, err := Authenticate(t.Context(), loginRequest("alice", "pw1"), store)
		require.NoError(t, err)
		assert.Equal(t, "alice", account.Name)
	})

	t.Run("password containing colons", func(t *testing.T) {
		t.Parallel()
		store := newFakeAccounts(t, "alice", "pw:with:colons")
		account, err := Authenticate(t.Context(), loginRequest("alice", "pw:with:colons"), store)
		require.NoError(t, err)
		assert.Equal(t, "alice", account.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		store := newFakeAccounts(t, "alice", "pw1")
		_, err := Authenticate(t.Context(), loginRequest("alice", "wrong"), store)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user is indistinguishable from wrong password", func(t *testing.T) {
		t.Parallel()
		store := newFakeAccounts(t, "alice", "pw1")
		_, err := Authenticate(t.Context(), loginRequest("nobody", "pw1"), store)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing header never reaches the store", func(t *testing.T) {
		t.Parallel()
		store := &fakeAccounts{}
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		_, err := Authenticate(t.Context(), req, store)
		assert.ErrorIs(t, err, ErrMalformedCredentials)
		assert.Zero(t, store.lookups)
	})

	t.Run("non-basic scheme never reaches the store", func(t *testing.T) {
		t.Parallel()
		store := &fakeAccounts{}
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("Authorization", "Bearer abcdef")
		_, err := Authenticate(t.Context(), req, store)
		assert.ErrorIs(t, err, ErrMalformedCredentials)
		assert.Zero(t, store.lookups)
	})

	t.Run("store fault propagates untouched", func(t *testing.T) {
		t.Parallel()
		store := &fakeAccounts{fail: storage.ErrInternal}
		_, err := Authenticate(t.Context(), loginRequest("alice", "pw1"), store)
		assert.ErrorIs(t, err, storage.ErrInternal)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates account with hashed password", func(t *testing.T) {
		t.Parallel()
		store := &fakeAccounts{}
		account, err := Register(t.Context(), store, "alice", "a@x.com", "pw1")
		require.NoError(t, err)
		assert.Equal(t, "alice", account.Name)
		assert.Equal(t, "a@x.com", account.Email)
		assert.NotEqual(t, []byte("pw1"), account.PasswordHash)
		assert.NoError(t, ComparePassword("pw1", account.PasswordHash))
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		store := &fakeAccounts{}
		for _, args := range [][3]string{
			{"", "a@x.com", "pw1"},
			{"alice", "", "pw1"},
			{"alice", "a@x.com", ""},
		} {
			_, err := Register(t.Context(), store, args[0], args[1], args[2])
			assert.ErrorIs(t, err, ErrMissingFields)
		}
		assert.Zero(t, store.lookups)
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		store := newFakeAccounts(t, "alice", "pw1")
		_, err := Register(t.Context(), store, "alice", "b@y.com", "pw2")
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("store fault propagates untouched", func(t *testing.T) {
		t.Parallel()
		store := &fakeAccounts{fail: storage.ErrInternal}
		_, err := Register(t.Context(), store, "alice", "a@x.com", "pw1")
		assert.ErrorIs(t, err, storage.ErrInternal)
	})
}
