// Package realm provides realm queries, the membership authorization gate,
// and the portal lifecycle.
package realm

import (
	"context"
	"errors"
	"log/slog"

	"helheim/internal/domain"
)

// Service provides realm-scoped operations. Every realm-scoped caller goes
// through Authorize first.
type Service struct {
	repo        domain.RealmRepository
	provisioner domain.Provisioner
	compute     domain.ComputeController
	worlds      domain.ObjectStore
	logger      *slog.Logger
}

// NewService creates a realm service.
func NewService(
	repo domain.RealmRepository,
	provisioner domain.Provisioner,
	compute domain.ComputeController,
	worlds domain.ObjectStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		provisioner: provisioner,
		compute:     compute,
		worlds:      worlds,
		logger:      logger,
	}
}

// Authorize resolves the user's membership in the realm and, when
// requiredRoles is non-empty, checks the membership's role against it.
// A missing realm and a missing membership both collapse to the same denial
// so callers cannot probe for realm existence.
func (s *Service) Authorize(ctx context.Context, realmGUID, userGUID string, requiredRoles []string) (*domain.RealmUser, error) {
	membership, err := s.repo.GetMembership(ctx, realmGUID, userGUID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, domain.ErrAccessDenied("user does not have access to this realm")
		}
		return nil, err
	}
	if len(requiredRoles) > 0 {
		allowed := false
		for _, role := range requiredRoles {
			if membership.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, domain.ErrAccessDenied("insufficient permissions for realm")
		}
	}
	return membership, nil
}

// GetRealm returns the realm details.
func (s *Service) GetRealm(ctx context.Context, realmGUID string) (*domain.Realm, error) {
	return s.repo.GetRealm(ctx, realmGUID)
}

// ListRealmsForUser returns every membership of the user across realms.
func (s *Service) ListRealmsForUser(ctx context.Context, userGUID string) ([]domain.RealmUser, error) {
	return s.repo.ListRealmsForUser(ctx, userGUID)
}

// ListMembers returns all memberships of the realm.
func (s *Service) ListMembers(ctx context.Context, realmGUID string) ([]domain.RealmUser, error) {
	return s.repo.ListMembers(ctx, realmGUID)
}

// ListPortals returns the realm's portal rows.
func (s *Service) ListPortals(ctx context.Context, realmGUID string) ([]domain.RealmPortal, error) {
	return s.repo.ListPortals(ctx, realmGUID)
}
