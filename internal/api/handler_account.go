package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"helheim/internal/domain"
)

// HandleGetAccount returns the authenticated user's own account.
func (h *Handler) HandleGetAccount(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	guid := chi.URLParam(r, "guid")
	if guid != p.UserGUID {
		h.writeError(w, r, domain.ErrAccessDenied("cannot access another user's account"))
		return
	}

	account, err := h.accounts.Get(r.Context(), guid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, account)
}

// HandleDeleteAccount removes the authenticated user's own account.
func (h *Handler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	guid := chi.URLParam(r, "guid")
	if guid != p.UserGUID {
		h.writeError(w, r, domain.ErrAccessDenied("cannot access another user's account"))
		return
	}

	if err := h.accounts.Delete(r.Context(), guid); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}
