package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/roadbook/roadbook/internal/journal"
)

// ListUsers handles GET /users. Admin only.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.store.ListAccounts(r.Context())
	if err != nil {
		h.log.Error("list accounts failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]userResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, projectUser(&accounts[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Profile handles GET /users/profile for the authenticated principal.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	p := principal(r.Context())
	writeJSON(w, http.StatusOK, profileResponse{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		IsAdmin:  p.Role == journal.RoleAdmin,
	})
}

// PublicProfile handles GET /users/profile/{username}. No auth required.
func (h *Handlers) PublicProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	account, err := h.store.GetAccountByUsername(r.Context(), username)
	if err != nil {
		h.log.Error("account lookup failed", "username", username, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if account == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, projectUser(account))
}

// ListFavorites handles GET /users/favorites: the principal's starred
// roadtrips, oldest star first. Stars whose roadtrip has since been deleted
// are skipped.
func (h *Handlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	p := principal(r.Context())

	ids, err := h.store.ListFavorites(r.Context(), p.Username)
	if err != nil {
		h.log.Error("list favorites failed", "username", p.Username, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := []roadtripResponse{}
	for _, id := range ids {
		rt, err := h.store.GetRoadtrip(r.Context(), id)
		if err != nil {
			h.log.Error("favorite roadtrip lookup failed", "roadtrip_id", id, "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if rt != nil {
			out = append(out, projectRoadtrip(rt))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// AddFavorite handles PUT /users/favorites/{roadtripID}. Starring an
// already-starred roadtrip is a no-op.
func (h *Handlers) AddFavorite(w http.ResponseWriter, r *http.Request) {
	p := principal(r.Context())
	roadtripID := chi.URLParam(r, "roadtripID")

	rt, err := h.store.GetRoadtrip(r.Context(), roadtripID)
	if err != nil {
		h.log.Error("roadtrip lookup failed", "roadtrip_id", roadtripID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if rt == nil {
		writeError(w, http.StatusNotFound, "roadtrip not found")
		return
	}

	if err := h.store.AddFavorite(r.Context(), p.Username, roadtripID); err != nil {
		h.log.Error("add favorite failed", "username", p.Username, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "roadtrip starred"})
}

// RemoveFavorite handles DELETE /users/favorites/{roadtripID}.
func (h *Handlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	p := principal(r.Context())
	roadtripID := chi.URLParam(r, "roadtripID")

	if err := h.store.RemoveFavorite(r.Context(), p.Username, roadtripID); err != nil {
		h.log.Error("remove favorite failed", "username", p.Username, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "roadtrip unstarred"})
}
