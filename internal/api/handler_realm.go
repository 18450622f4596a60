package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"helheim/internal/domain"
)

// authorizeRealm resolves the principal and checks realm membership, with an
// optional role requirement.
func (h *Handler) authorizeRealm(r *http.Request, requiredRoles []string) (*domain.RealmUser, error) {
	p, err := principal(r)
	if err != nil {
		return nil, err
	}
	realmGUID := chi.URLParam(r, "guid")
	return h.realms.Authorize(r.Context(), realmGUID, p.UserGUID, requiredRoles)
}

// HandleListRealms returns the authenticated user's realm memberships.
func (h *Handler) HandleListRealms(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	memberships, err := h.realms.ListRealmsForUser(r.Context(), p.UserGUID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, memberships)
}

// HandleGetRealm returns the realm details for a member.
func (h *Handler) HandleGetRealm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authorizeRealm(r, nil); err != nil {
		h.writeError(w, r, err)
		return
	}
	realm, err := h.realms.GetRealm(r.Context(), chi.URLParam(r, "guid"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, realm)
}

// HandleListMembers returns the realm's memberships.
func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authorizeRealm(r, nil); err != nil {
		h.writeError(w, r, err)
		return
	}
	members, err := h.realms.ListMembers(r.Context(), chi.URLParam(r, "guid"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, members)
}

// HandleListPortals returns the realm's portals for a member.
func (h *Handler) HandleListPortals(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authorizeRealm(r, nil); err != nil {
		h.writeError(w, r, err)
		return
	}
	portals, err := h.realms.ListPortals(r.Context(), chi.URLParam(r, "guid"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, portals)
}

// HandleOpenPortal provisions a game server for the realm.
func (h *Handler) HandleOpenPortal(w http.ResponseWriter, r *http.Request) {
	membership, err := h.authorizeRealm(r, nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req domain.CreateRealmPortal
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	portal, err := h.realms.OpenPortal(r.Context(), chi.URLParam(r, "guid"), membership.UserGUID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, portal)
}

// HandleClosePortal tears down a realm's portal.
func (h *Handler) HandleClosePortal(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authorizeRealm(r, nil); err != nil {
		h.writeError(w, r, err)
		return
	}
	var req domain.CloseRealmPortal
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.realms.ClosePortal(r.Context(), chi.URLParam(r, "guid"), req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

// HandleListWorlds returns the realm's world saves for a member.
func (h *Handler) HandleListWorlds(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authorizeRealm(r, nil); err != nil {
		h.writeError(w, r, err)
		return
	}
	worlds, err := h.realms.ListWorlds(r.Context(), chi.URLParam(r, "guid"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, worlds)
}

// HandleCreateWorldBackup copies a world's save files into a named backup.
// Admin only.
func (h *Handler) HandleCreateWorldBackup(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authorizeRealm(r, []string{domain.RoleAdmin}); err != nil {
		h.writeError(w, r, err)
		return
	}
	var req domain.CreateRealmWorldBackup
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	realmGUID := chi.URLParam(r, "guid")
	worldName := chi.URLParam(r, "world")
	if err := h.realms.CreateWorldBackup(r.Context(), realmGUID, worldName, req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, nil)
}

// HandleDeleteWorld removes a world's save files. Admin only.
func (h *Handler) HandleDeleteWorld(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authorizeRealm(r, []string{domain.RoleAdmin}); err != nil {
		h.writeError(w, r, err)
		return
	}
	realmGUID := chi.URLParam(r, "guid")
	worldName := chi.URLParam(r, "world")
	if err := h.realms.DeleteWorld(r.Context(), realmGUID, worldName); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

// HandleGetListFile returns one of the server's player list files.
func (h *Handler) HandleGetListFile(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authorizeRealm(r, nil); err != nil {
		h.writeError(w, r, err)
		return
	}
	file, err := h.realms.GetListFile(r.Context(), chi.URLParam(r, "guid"), chi.URLParam(r, "file"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, file)
}

// HandleSaveListFile stores one of the server's player list files. Admin only.
func (h *Handler) HandleSaveListFile(w http.ResponseWriter, r *http.Request) {
	if _, err := h.authorizeRealm(r, []string{domain.RoleAdmin}); err != nil {
		h.writeError(w, r, err)
		return
	}
	var file domain.RealmListFile
	if err := decodeBody(r, &file); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.realms.SaveListFile(r.Context(), chi.URLParam(r, "guid"), file); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, file)
}
