// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase.
package testutil

import (
	"context"
	"time"

	"helheim/internal/domain"
)

// === Realm Repository Mock ===

// MockRealmRepo implements domain.RealmRepository for testing. Un-stubbed
// methods panic so tests fail loudly on unexpected calls.
type MockRealmRepo struct {
	GetRealmFn          func(ctx context.Context, realmGUID string) (*domain.Realm, error)
	ListRealmsForUserFn func(ctx context.Context, userGUID string) ([]domain.RealmUser, error)
	GetMembershipFn     func(ctx context.Context, realmGUID, userGUID string) (*domain.RealmUser, error)
	ListMembersFn       func(ctx context.Context, realmGUID string) ([]domain.RealmUser, error)
	ListPortalsFn       func(ctx context.Context, realmGUID string) ([]domain.RealmPortal, error)
	PutRealmFn          func(ctx context.Context, realm *domain.Realm) error
	PutMembershipFn     func(ctx context.Context, user *domain.RealmUser) error
	PutPortalFn         func(ctx context.Context, portal *domain.RealmPortal) error
	DeletePortalFn      func(ctx context.Context, realmGUID, portalGUID string) error
}

func (m *MockRealmRepo) GetRealm(ctx context.Context, realmGUID string) (*domain.Realm, error) {
	if m.GetRealmFn != nil {
		return m.GetRealmFn(ctx, realmGUID)
	}
	panic("unexpected call to MockRealmRepo.GetRealm")
}

func (m *MockRealmRepo) ListRealmsForUser(ctx context.Context, userGUID string) ([]domain.RealmUser, error) {
	if m.ListRealmsForUserFn != nil {
		return m.ListRealmsForUserFn(ctx, userGUID)
	}
	panic("unexpected call to MockRealmRepo.ListRealmsForUser")
}

func (m *MockRealmRepo) GetMembership(ctx context.Context, realmGUID, userGUID string) (*domain.RealmUser, error) {
	if m.GetMembershipFn != nil {
		return m.GetMembershipFn(ctx, realmGUID, userGUID)
	}
	panic("unexpected call to MockRealmRepo.GetMembership")
}

func (m *MockRealmRepo) ListMembers(ctx context.Context, realmGUID string) ([]domain.RealmUser, error) {
	if m.ListMembersFn != nil {
		return m.ListMembersFn(ctx, realmGUID)
	}
	panic("unexpected call to MockRealmRepo.ListMembers")
}

func (m *MockRealmRepo) ListPortals(ctx context.Context, realmGUID string) ([]domain.RealmPortal, error) {
	if m.ListPortalsFn != nil {
		return m.ListPortalsFn(ctx, realmGUID)
	}
	panic("unexpected call to MockRealmRepo.ListPortals")
}

func (m *MockRealmRepo) PutRealm(ctx context.Context, realm *domain.Realm) error {
	if m.PutRealmFn != nil {
		return m.PutRealmFn(ctx, realm)
	}
	panic("unexpected call to MockRealmRepo.PutRealm")
}

func (m *MockRealmRepo) PutMembership(ctx context.Context, user *domain.RealmUser) error {
	if m.PutMembershipFn != nil {
		return m.PutMembershipFn(ctx, user)
	}
	panic("unexpected call to MockRealmRepo.PutMembership")
}

func (m *MockRealmRepo) PutPortal(ctx context.Context, portal *domain.RealmPortal) error {
	if m.PutPortalFn != nil {
		return m.PutPortalFn(ctx, portal)
	}
	panic("unexpected call to MockRealmRepo.PutPortal")
}

func (m *MockRealmRepo) DeletePortal(ctx context.Context, realmGUID, portalGUID string) error {
	if m.DeletePortalFn != nil {
		return m.DeletePortalFn(ctx, realmGUID, portalGUID)
	}
	panic("unexpected call to MockRealmRepo.DeletePortal")
}

var _ domain.RealmRepository = (*MockRealmRepo)(nil)

// === Account Repository Mock ===

// MockAccountRepo implements domain.AccountRepository for testing.
type MockAccountRepo struct {
	PutFn            func(ctx context.Context, account *domain.Account) error
	GetFn            func(ctx context.Context, guid string) (*domain.Account, error)
	FindByUsernameFn func(ctx context.Context, username string) (*domain.Account, bool, error)
	DeleteFn         func(ctx context.Context, guid string) error
}

func (m *MockAccountRepo) Put(ctx context.Context, account *domain.Account) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, account)
	}
	panic("unexpected call to MockAccountRepo.Put")
}

func (m *MockAccountRepo) Get(ctx context.Context, guid string) (*domain.Account, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, guid)
	}
	panic("unexpected call to MockAccountRepo.Get")
}

func (m *MockAccountRepo) FindByUsername(ctx context.Context, username string) (*domain.Account, bool, error) {
	if m.FindByUsernameFn != nil {
		return m.FindByUsernameFn(ctx, username)
	}
	panic("unexpected call to MockAccountRepo.FindByUsername")
}

func (m *MockAccountRepo) Delete(ctx context.Context, guid string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, guid)
	}
	panic("unexpected call to MockAccountRepo.Delete")
}

var _ domain.AccountRepository = (*MockAccountRepo)(nil)

// === Provisioning Mocks ===

// MockProvisioner implements domain.Provisioner for testing.
type MockProvisioner struct {
	ProvisionFn func(ctx context.Context, req domain.ProvisionRequest) (*domain.ProvisionResult, error)
}

func (m *MockProvisioner) Provision(ctx context.Context, req domain.ProvisionRequest) (*domain.ProvisionResult, error) {
	if m.ProvisionFn != nil {
		return m.ProvisionFn(ctx, req)
	}
	panic("unexpected call to MockProvisioner.Provision")
}

var _ domain.Provisioner = (*MockProvisioner)(nil)

// MockComputeController implements domain.ComputeController for testing.
type MockComputeController struct {
	TerminateInstanceFn func(ctx context.Context, instanceID string) error
	CancelSpotRequestFn func(ctx context.Context, spotRequestID string) error
}

func (m *MockComputeController) TerminateInstance(ctx context.Context, instanceID string) error {
	if m.TerminateInstanceFn != nil {
		return m.TerminateInstanceFn(ctx, instanceID)
	}
	panic("unexpected call to MockComputeController.TerminateInstance")
}

func (m *MockComputeController) CancelSpotRequest(ctx context.Context, spotRequestID string) error {
	if m.CancelSpotRequestFn != nil {
		return m.CancelSpotRequestFn(ctx, spotRequestID)
	}
	panic("unexpected call to MockComputeController.CancelSpotRequest")
}

var _ domain.ComputeController = (*MockComputeController)(nil)

// === Auth Mocks ===

// MockTokenCodec implements domain.TokenCodec for testing.
type MockTokenCodec struct {
	EncodeFn func(claims map[string]string, ttl time.Duration) (string, error)
	DecodeFn func(token string) (map[string]string, error)
}

func (m *MockTokenCodec) Encode(claims map[string]string, ttl time.Duration) (string, error) {
	if m.EncodeFn != nil {
		return m.EncodeFn(claims, ttl)
	}
	panic("unexpected call to MockTokenCodec.Encode")
}

func (m *MockTokenCodec) Decode(token string) (map[string]string, error) {
	if m.DecodeFn != nil {
		return m.DecodeFn(token)
	}
	panic("unexpected call to MockTokenCodec.Decode")
}

var _ domain.TokenCodec = (*MockTokenCodec)(nil)

// PlainHasher is a domain.PasswordHasher that stores passwords unmodified.
// Test-only; keeps assertions readable and bcrypt out of hot test paths.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return password, nil }
func (PlainHasher) Verify(password, hash string) bool    { return password == hash }

var _ domain.PasswordHasher = PlainHasher{}
