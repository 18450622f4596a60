package repository

import (
	"context"
	"fmt"

	"helheim/internal/domain"
	"helheim/internal/store"
)

// AccountRepo implements domain.AccountRepository. Accounts live in their own
// table keyed by guid alone, with a secondary index on username for login.
type AccountRepo struct {
	store         store.EntityStore
	usernameIndex string
}

// NewAccountRepo creates a repository over the accounts table.
func NewAccountRepo(entityStore store.EntityStore, usernameIndex string) *AccountRepo {
	return &AccountRepo{store: entityStore, usernameIndex: usernameIndex}
}

// Put upserts an account.
func (r *AccountRepo) Put(ctx context.Context, account *domain.Account) error {
	return r.store.Put(ctx, store.Record{
		"guid":     account.GUID,
		"username": account.Username,
		"password": account.Password,
		"c_at":     domain.FormatTime(account.CreatedAt),
	})
}

// Get returns the account by guid.
func (r *AccountRepo) Get(ctx context.Context, guid string) (*domain.Account, error) {
	rec, ok, err := r.store.Get(ctx, guid, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound("account %s not found", guid)
	}
	return decodeAccount(rec)
}

// FindByUsername looks the account up through the username index. Absence is
// reported through the found flag rather than an error so callers can branch
// on existence without catching failures.
func (r *AccountRepo) FindByUsername(ctx context.Context, username string) (*domain.Account, bool, error) {
	recs, err := r.store.QueryIndex(ctx, r.usernameIndex, "username", username)
	if err != nil {
		return nil, false, err
	}
	if len(recs) == 0 {
		return nil, false, nil
	}
	account, err := decodeAccount(recs[0])
	if err != nil {
		return nil, false, err
	}
	return account, true, nil
}

// Delete removes the account; absent accounts are a no-op.
func (r *AccountRepo) Delete(ctx context.Context, guid string) error {
	return r.store.Delete(ctx, guid, "")
}

func decodeAccount(rec store.Record) (*domain.Account, error) {
	createdAt, err := domain.ParseTime(rec["c_at"])
	if err != nil {
		return nil, fmt.Errorf("corrupt record: account %s timestamp: %w", rec["guid"], err)
	}
	return &domain.Account{
		GUID:      rec["guid"],
		Username:  rec["username"],
		Password:  rec["password"],
		CreatedAt: createdAt,
	}, nil
}
