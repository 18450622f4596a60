package api

import (
	"net/http"
	"strings"

	"helheim/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
	UserGUID     string `json:"user_guid"`
}

// HandleLogin exchanges a username/password pair for a token pair. Both JSON
// and form-encoded bodies are accepted.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			h.writeError(w, r, domain.ErrValidation("invalid form body: %v", err))
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	} else if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		h.writeError(w, r, domain.ErrValidation("username and password are required"))
		return
	}

	pair, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, pair)
}

// HandleRegister creates a new account and immediately issues tokens for it.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAccount
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	account, err := h.accounts.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	pair, err := h.auth.IssueTokenPair(account.GUID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"account": account,
		"tokens":  pair,
	})
}

// HandleRefresh verifies a refresh token and issues a fresh pair.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.RefreshToken == "" || req.UserGUID == "" {
		h.writeError(w, r, domain.ErrValidation("refresh_token and user_guid are required"))
		return
	}

	pair, err := h.auth.Refresh(req.RefreshToken, req.UserGUID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, pair)
}
