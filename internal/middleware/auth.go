package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"helheim/internal/domain"
)

// Auth returns an HTTP middleware that authenticates requests with a JWT
// Bearer token. The decoded user_guid claim and the raw token are stored in
// the request context as a domain.ContextPrincipal. Requests without a valid
// token are rejected with 401.
func Auth(codec domain.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeUnauthorized(w, "missing bearer token")
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := codec.Decode(raw)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}
			userGUID := claims["user_guid"]
			if userGUID == "" {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			principal := domain.ContextPrincipal{UserGUID: userGUID, RawToken: raw}
			ctx := domain.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    401,
		"message": message,
	})
}
