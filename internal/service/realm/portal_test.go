package realm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helheim/internal/domain"
)

func validOpenRequest() domain.CreateRealmPortal {
	return domain.CreateRealmPortal{
		Name:      "midgard server",
		WorldName: "midgard",
		Password:  "hunter22",
	}
}

func provisionResult() *domain.ProvisionResult {
	return &domain.ProvisionResult{
		InstanceID:      "i-0abc",
		SpotRequestID:   "sir-0abc",
		Config:          domain.ProvisionConfig{ServerName: "midgard server", WorldName: "midgard"},
		PublicIPAddress: "203.0.113.7",
		Region:          "eu-north-1",
		InstanceType:    "m5.large",
		Status:          "running",
	}
}

func TestOpenPortal(t *testing.T) {
	var stored *domain.RealmPortal
	repo := &mockRealmRepo{
		GetRealmFn: func(_ context.Context, realmGUID string) (*domain.Realm, error) {
			return &domain.Realm{GUID: realmGUID, Name: "Midgard"}, nil
		},
		ListPortalsFn: func(_ context.Context, _ string) ([]domain.RealmPortal, error) {
			return nil, nil
		},
		PutPortalFn: func(_ context.Context, portal *domain.RealmPortal) error {
			stored = portal
			return nil
		},
	}
	prov := &mockProvisioner{
		ProvisionFn: func(_ context.Context, req domain.ProvisionRequest) (*domain.ProvisionResult, error) {
			assert.Equal(t, "realm-1", req.RealmGUID)
			assert.Equal(t, "midgard server", req.ServerName)
			assert.Equal(t, "hunter22", req.Password)
			return provisionResult(), nil
		},
	}
	svc := NewService(repo, prov, nil, nil, discardLogger())

	portal, err := svc.OpenPortal(context.Background(), "realm-1", "user-1", validOpenRequest())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, stored, portal)
	assert.NotEmpty(t, portal.GUID)
	assert.Equal(t, "realm-1", portal.RealmGUID)
	assert.Equal(t, "user-1", portal.OpenedByUserGUID)
	assert.Equal(t, "i-0abc", portal.InstanceID)
	assert.Equal(t, "sir-0abc", portal.SpotRequestID)
	assert.Equal(t, "hunter22", portal.Password)
	assert.Equal(t, "running", portal.Status)
	assert.False(t, portal.CreatedAt.IsZero())
}

func TestOpenPortalRealmNotFound(t *testing.T) {
	repo := &mockRealmRepo{
		GetRealmFn: func(_ context.Context, realmGUID string) (*domain.Realm, error) {
			return nil, domain.ErrNotFound("realm %s not found", realmGUID)
		},
	}
	svc := NewService(repo, nil, nil, nil, discardLogger())

	_, err := svc.OpenPortal(context.Background(), "missing", "user-1", validOpenRequest())
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestOpenPortalAlreadyOpen(t *testing.T) {
	repo := &mockRealmRepo{
		GetRealmFn: func(_ context.Context, realmGUID string) (*domain.Realm, error) {
			return &domain.Realm{GUID: realmGUID}, nil
		},
		ListPortalsFn: func(_ context.Context, _ string) ([]domain.RealmPortal, error) {
			return []domain.RealmPortal{{GUID: "portal-1"}}, nil
		},
	}
	svc := NewService(repo, nil, nil, nil, discardLogger())

	_, err := svc.OpenPortal(context.Background(), "realm-1", "user-1", validOpenRequest())
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "already open")
}

func TestOpenPortalShortPassword(t *testing.T) {
	repo := &mockRealmRepo{
		GetRealmFn: func(_ context.Context, realmGUID string) (*domain.Realm, error) {
			return &domain.Realm{GUID: realmGUID}, nil
		},
		ListPortalsFn: func(_ context.Context, _ string) ([]domain.RealmPortal, error) {
			return nil, nil
		},
	}
	svc := NewService(repo, nil, nil, nil, discardLogger())

	req := validOpenRequest()
	req.Password = "short"
	_, err := svc.OpenPortal(context.Background(), "realm-1", "user-1", req)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "too short")
}

// The password length check runs after the realm and single-portal checks: a
// short password against a realm with an open portal reports the open portal.
func TestOpenPortalPreconditionOrder(t *testing.T) {
	repo := &mockRealmRepo{
		GetRealmFn: func(_ context.Context, realmGUID string) (*domain.Realm, error) {
			return &domain.Realm{GUID: realmGUID}, nil
		},
		ListPortalsFn: func(_ context.Context, _ string) ([]domain.RealmPortal, error) {
			return []domain.RealmPortal{{GUID: "portal-1"}}, nil
		},
	}
	svc := NewService(repo, nil, nil, nil, discardLogger())

	req := validOpenRequest()
	req.Password = "short"
	_, err := svc.OpenPortal(context.Background(), "realm-1", "user-1", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already open")
}

func TestOpenPortalProvisionFailureWritesNoRow(t *testing.T) {
	repo := &mockRealmRepo{
		GetRealmFn: func(_ context.Context, realmGUID string) (*domain.Realm, error) {
			return &domain.Realm{GUID: realmGUID}, nil
		},
		ListPortalsFn: func(_ context.Context, _ string) ([]domain.RealmPortal, error) {
			return nil, nil
		},
		// PutPortalFn deliberately unset: a call would panic.
	}
	prov := &mockProvisioner{
		ProvisionFn: func(_ context.Context, _ domain.ProvisionRequest) (*domain.ProvisionResult, error) {
			return nil, domain.ErrBackend(errTest, "provisioning backend call failed")
		},
	}
	svc := NewService(repo, prov, nil, nil, discardLogger())

	_, err := svc.OpenPortal(context.Background(), "realm-1", "user-1", validOpenRequest())
	var backend *domain.BackendError
	require.ErrorAs(t, err, &backend)
}

func TestOpenPortalInvalidModifier(t *testing.T) {
	svc := NewService(&mockRealmRepo{}, nil, nil, nil, discardLogger())

	req := validOpenRequest()
	req.Modifiers = []domain.WorldModifier{{Key: "combat", Value: "impossible"}}
	_, err := svc.OpenPortal(context.Background(), "realm-1", "user-1", req)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
}

func closeRequest() domain.CloseRealmPortal {
	return domain.CloseRealmPortal{
		PortalGUID:    "portal-1",
		InstanceID:    "i-0abc",
		SpotRequestID: "sir-0abc",
	}
}

func TestClosePortal(t *testing.T) {
	var deleted bool
	repo := &mockRealmRepo{
		DeletePortalFn: func(_ context.Context, realmGUID, portalGUID string) error {
			assert.Equal(t, "realm-1", realmGUID)
			assert.Equal(t, "portal-1", portalGUID)
			deleted = true
			return nil
		},
	}
	compute := &mockCompute{
		TerminateInstanceFn: func(_ context.Context, instanceID string) error {
			assert.Equal(t, "i-0abc", instanceID)
			return nil
		},
		CancelSpotRequestFn: func(_ context.Context, spotRequestID string) error {
			assert.Equal(t, "sir-0abc", spotRequestID)
			return nil
		},
	}
	svc := NewService(repo, nil, compute, nil, discardLogger())

	require.NoError(t, svc.ClosePortal(context.Background(), "realm-1", closeRequest()))
	assert.True(t, deleted)
}

// Backend failures do not stop the row delete, and are still reported.
func TestClosePortalBackendFailureStillDeletesRow(t *testing.T) {
	var deleted bool
	repo := &mockRealmRepo{
		DeletePortalFn: func(_ context.Context, _, _ string) error {
			deleted = true
			return nil
		},
	}
	compute := &mockCompute{
		TerminateInstanceFn: func(_ context.Context, _ string) error {
			return domain.ErrBackend(errTest, "terminate instance i-0abc")
		},
		CancelSpotRequestFn: func(_ context.Context, _ string) error {
			return nil
		},
	}
	svc := NewService(repo, nil, compute, nil, discardLogger())

	err := svc.ClosePortal(context.Background(), "realm-1", closeRequest())
	var backend *domain.BackendError
	require.ErrorAs(t, err, &backend)
	assert.True(t, deleted)
}

// A retried close re-issues both backend calls and still succeeds: deleting an
// absent portal row is a no-op, so the second call sees nothing to undo.
func TestClosePortalRetryAfterSuccess(t *testing.T) {
	var terminated, cancelled int
	repo := &mockRealmRepo{
		DeletePortalFn: func(_ context.Context, _, _ string) error {
			return nil
		},
	}
	compute := &mockCompute{
		TerminateInstanceFn: func(_ context.Context, _ string) error {
			terminated++
			return nil
		},
		CancelSpotRequestFn: func(_ context.Context, _ string) error {
			cancelled++
			return nil
		},
	}
	svc := NewService(repo, nil, compute, nil, discardLogger())

	require.NoError(t, svc.ClosePortal(context.Background(), "realm-1", closeRequest()))
	require.NoError(t, svc.ClosePortal(context.Background(), "realm-1", closeRequest()))
	assert.Equal(t, 2, terminated)
	assert.Equal(t, 2, cancelled)
}

func TestClosePortalValidatesRequest(t *testing.T) {
	svc := NewService(&mockRealmRepo{}, nil, &mockCompute{}, nil, discardLogger())

	req := closeRequest()
	req.InstanceID = ""
	err := svc.ClosePortal(context.Background(), "realm-1", req)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
}
