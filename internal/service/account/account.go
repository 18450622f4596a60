// Package account provides membership-independent account management.
package account

import (
	"context"
	"time"

	"helheim/internal/domain"
)

// Service provides account CRUD. Passwords are hashed before they reach the
// repository.
type Service struct {
	repo   domain.AccountRepository
	hasher domain.PasswordHasher
}

// NewService creates an account service.
func NewService(repo domain.AccountRepository, hasher domain.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Create registers a new account. The username must be free; existence is
// checked with an explicit query rather than by catching a lookup failure.
func (s *Service) Create(ctx context.Context, req domain.CreateAccount) (*domain.AccountDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, exists, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict("username already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		GUID:      domain.NewID(),
		Username:  req.Username,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, account); err != nil {
		return nil, err
	}

	dto := account.DTO()
	return &dto, nil
}

// Get returns the account's external representation.
func (s *Service) Get(ctx context.Context, guid string) (*domain.AccountDTO, error) {
	account, err := s.repo.Get(ctx, guid)
	if err != nil {
		return nil, err
	}
	dto := account.DTO()
	return &dto, nil
}

// Delete removes the account.
func (s *Service) Delete(ctx context.Context, guid string) error {
	return s.repo.Delete(ctx, guid)
}
