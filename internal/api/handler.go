// Package api implements the HTTP surface of the realm service.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"helheim/internal/domain"
	accountsvc "helheim/internal/service/account"
	realmsvc "helheim/internal/service/realm"
	securitysvc "helheim/internal/service/security"
)

// Handler holds the services backing the HTTP endpoints.
type Handler struct {
	realms   *realmsvc.Service
	accounts *accountsvc.Service
	auth     *securitysvc.AuthService
	logger   *slog.Logger
}

// NewHandler creates a Handler wired to the given services.
func NewHandler(realms *realmsvc.Service, accounts *accountsvc.Service, auth *securitysvc.AuthService, logger *slog.Logger) *Handler {
	return &Handler{
		realms:   realms,
		accounts: accounts,
		auth:     auth,
		logger:   logger.With("component", "api"),
	}
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("internal error", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	h.writeJSON(w, status, errorResponse{Code: status, Message: err.Error()})
}

// decodeBody decodes a JSON request body into v. A malformed body is a
// validation error.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrValidation("invalid request body: %v", err)
	}
	return nil
}

// principal returns the authenticated principal from the request context.
func principal(r *http.Request) (domain.ContextPrincipal, error) {
	p, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		return domain.ContextPrincipal{}, domain.ErrCredentials("no authenticated principal")
	}
	return p, nil
}

// HandleRoot responds to unauthenticated health probes.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"service": "helheim", "status": "ok"})
}
