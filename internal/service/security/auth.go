// Package security provides authentication and token issuance.
package security

import (
	"context"
	"time"

	"helheim/internal/domain"
)

// AuthService issues and refreshes access/refresh token pairs bound to a
// user identity.
type AuthService struct {
	accounts   domain.AccountRepository
	codec      domain.TokenCodec
	hasher     domain.PasswordHasher
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates an AuthService.
func NewAuthService(
	accounts domain.AccountRepository,
	codec domain.TokenCodec,
	hasher domain.PasswordHasher,
	accessTTL, refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		accounts:   accounts,
		codec:      codec,
		hasher:     hasher,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueTokenPair creates an access/refresh pair for the user. Both tokens
// carry only the user_guid claim and differ only in expiry.
func (s *AuthService) IssueTokenPair(userGUID string) (*domain.TokenPair, error) {
	claims := map[string]string{"user_guid": userGUID}
	access, err := s.codec.Encode(claims, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Encode(claims, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Authenticate verifies the username/password pair and issues tokens.
// Unknown usernames and wrong passwords both report the same generic
// credentials failure.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	account, found, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrCredentials("invalid credentials")
	}
	if !s.hasher.Verify(password, account.Password) {
		return nil, domain.ErrCredentials("invalid credentials")
	}
	return s.IssueTokenPair(account.GUID)
}

// Refresh verifies the refresh token, checks its user_guid claim against the
// claimed identity, and issues a fresh pair. Previously issued refresh
// tokens stay valid until their natural expiry.
func (s *AuthService) Refresh(rawRefreshToken, claimedUserGUID string) (*domain.TokenPair, error) {
	claims, err := s.codec.Decode(rawRefreshToken)
	if err != nil {
		return nil, err
	}
	if claims["user_guid"] != claimedUserGUID {
		return nil, domain.ErrCredentials("invalid credentials")
	}
	return s.IssueTokenPair(claimedUserGUID)
}
