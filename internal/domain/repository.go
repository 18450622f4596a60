package domain

import "context"

// RealmRepository maps the three realm-scoped entities onto the shared
// entity store's composite-key scheme.
type RealmRepository interface {
	// GetRealm returns the realm details row, or NotFoundError.
	GetRealm(ctx context.Context, realmGUID string) (*Realm, error)
	// ListRealmsForUser returns every membership of the user across realms.
	// An empty slice is not an error.
	ListRealmsForUser(ctx context.Context, userGUID string) ([]RealmUser, error)
	// GetMembership returns the user's membership in the realm, or
	// NotFoundError when the user is not a member.
	GetMembership(ctx context.Context, realmGUID, userGUID string) (*RealmUser, error)
	// ListMembers returns all memberships of the realm.
	ListMembers(ctx context.Context, realmGUID string) ([]RealmUser, error)
	// ListPortals returns the portal rows of the realm (zero or one when
	// writers are correct).
	ListPortals(ctx context.Context, realmGUID string) ([]RealmPortal, error)
	// PutRealm, PutMembership, and PutPortal upsert rows; idempotent on
	// identical input.
	PutRealm(ctx context.Context, realm *Realm) error
	PutMembership(ctx context.Context, user *RealmUser) error
	PutPortal(ctx context.Context, portal *RealmPortal) error
	// DeletePortal removes exactly the identified row. Deleting an absent
	// row is a no-op so close-portal can be retried safely.
	DeletePortal(ctx context.Context, realmGUID, portalGUID string) error
}

// AccountRepository stores membership-independent accounts.
type AccountRepository interface {
	Put(ctx context.Context, account *Account) error
	// Get returns the account, or NotFoundError.
	Get(ctx context.Context, guid string) (*Account, error)
	// FindByUsername reports whether an account with the username exists.
	// Absence is a result, not an error.
	FindByUsername(ctx context.Context, username string) (*Account, bool, error)
	Delete(ctx context.Context, guid string) error
}
