// Package token provides the signed-token codec and password hashing used by
// the authentication layer.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"helheim/internal/domain"
)

// HS256Codec signs and verifies tokens with a shared HS256 secret. It
// implements domain.TokenCodec.
type HS256Codec struct {
	secret []byte
}

// NewHS256Codec creates a codec from the shared secret.
func NewHS256Codec(secret string) (*HS256Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	return &HS256Codec{secret: []byte(secret)}, nil
}

// Encode signs the claims mapping with the given time to live.
func (c *HS256Codec) Encode(claims map[string]string, ttl time.Duration) (string, error) {
	mapClaims := jwt.MapClaims{
		"exp": time.Now().Add(ttl).Unix(),
	}
	for k, v := range claims {
		mapClaims[k] = v
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the token's signature and expiry and returns its string
// claims. Verification failures surface as CredentialsError.
func (c *HS256Codec) Decode(tokenString string) (map[string]string, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, domain.ErrCredentials("token verification failed")
	}

	raw, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrCredentials("token verification failed")
	}

	claims := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			claims[k] = s
		}
	}
	return claims, nil
}
