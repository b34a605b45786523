package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roadbook/roadbook/internal/journal"
	"github.com/roadbook/roadbook/internal/store"
)

// ListRoadtrips handles GET /roadtrips?user=&search=. search wins when both
// filters are present; ?user= with an unknown username is a 404.
func (h *Handlers) ListRoadtrips(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	user := r.URL.Query().Get("user")

	var trips []journal.Roadtrip
	var err error

	switch {
	case search != "":
		trips, err = h.store.SearchRoadtrips(r.Context(), search)
	case user != "":
		var account *journal.Account
		account, err = h.store.GetAccountByUsername(r.Context(), user)
		if err == nil && account == nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		if err == nil {
			trips, err = h.store.ListRoadtripsByAuthor(r.Context(), account.Username)
		}
	default:
		trips, err = h.store.ListRoadtrips(r.Context())
	}

	if err != nil {
		h.log.Error("list roadtrips failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, projectRoadtrips(trips))
}

// GetRoadtrip handles GET /roadtrips/{roadtripID}.
// Cache hit → return. Store hit → cache + return. Neither → 404.
func (h *Handlers) GetRoadtrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "roadtripID")

	cached, err := h.cache.Get(r.Context(), id)
	if err != nil {
		h.log.Error("cache get failed", "roadtrip_id", id, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, projectRoadtrip(cached))
		return
	}

	rt, err := h.store.GetRoadtrip(r.Context(), id)
	if err != nil {
		h.log.Error("roadtrip lookup failed", "roadtrip_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if rt == nil {
		writeError(w, http.StatusNotFound, "roadtrip not found")
		return
	}

	if err := h.cache.Set(r.Context(), rt); err != nil {
		h.log.Warn("cache set failed after store hit", "roadtrip_id", id, "err", err)
	}
	writeJSON(w, http.StatusOK, projectRoadtrip(rt))
}

// CreateRoadtrip handles POST /roadtrips. The principal becomes the author.
func (h *Handlers) CreateRoadtrip(w http.ResponseWriter, r *http.Request) {
	p := principal(r.Context())

	var req createRoadtripRequest
	if !h.decode(w, r, &req) {
		return
	}

	rt := &journal.Roadtrip{
		ID:            uuid.NewString(),
		Title:         req.Title,
		SubTitle:      req.SubTitle,
		Author:        p.Username,
		Description:   req.Description,
		Category:      req.Category,
		Summary:       req.Summary,
		TotalDistance: req.TotalDistance,
		TotalTime:     req.TotalTime,
		LegDistances:  req.LegDistances,
		Waypoints:     toWaypoints(req.Waypoints),
	}

	if err := h.store.AddRoadtrip(r.Context(), rt); err != nil {
		h.log.Error("create roadtrip failed", "author", p.Username, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"detail":      "roadtrip created successfully",
		"roadtrip_id": rt.ID,
	})
}

// UpdateRoadtrip handles PATCH /roadtrips/{roadtripID}. Only the author may
// edit. Absent fields keep their stored values; a present waypoints list
// replaces the stored waypoints wholesale.
func (h *Handlers) UpdateRoadtrip(w http.ResponseWriter, r *http.Request) {
	p := principal(r.Context())
	id := chi.URLParam(r, "roadtripID")

	var req updateRoadtripRequest
	if !h.decode(w, r, &req) {
		return
	}

	rt, err := h.store.GetRoadtrip(r.Context(), id)
	if err != nil {
		h.log.Error("roadtrip lookup failed", "roadtrip_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if rt == nil {
		writeError(w, http.StatusNotFound, "roadtrip not found")
		return
	}
	if rt.Author != p.Username {
		writeError(w, http.StatusForbidden, "you don't have permission to update this roadtrip")
		return
	}

	if req.Title != nil {
		rt.Title = *req.Title
	}
	if req.SubTitle != nil {
		rt.SubTitle = *req.SubTitle
	}
	if req.Description != nil {
		rt.Description = *req.Description
	}
	if req.Category != nil {
		rt.Category = *req.Category
	}
	if req.Summary != nil {
		rt.Summary = *req.Summary
	}
	if req.TotalDistance != nil {
		rt.TotalDistance = *req.TotalDistance
	}
	if req.TotalTime != nil {
		rt.TotalTime = *req.TotalTime
	}
	if req.LegDistances != nil {
		rt.LegDistances = *req.LegDistances
	}
	if req.Waypoints != nil {
		rt.Waypoints = toWaypoints(*req.Waypoints)
	}

	if err := h.store.UpdateRoadtrip(r.Context(), rt); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "roadtrip not found")
			return
		}
		h.log.Error("update roadtrip failed", "roadtrip_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.cache.Delete(r.Context(), id); err != nil {
		h.log.Warn("cache delete failed after update", "roadtrip_id", id, "err", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "roadtrip updated successfully"})
}

// DeleteRoadtrip handles DELETE /roadtrips/{roadtripID}. Only the author
// may delete. Magazine references to the id are left as they are.
func (h *Handlers) DeleteRoadtrip(w http.ResponseWriter, r *http.Request) {
	p := principal(r.Context())
	id := chi.URLParam(r, "roadtripID")

	rt, err := h.store.GetRoadtrip(r.Context(), id)
	if err != nil {
		h.log.Error("roadtrip lookup failed", "roadtrip_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if rt == nil {
		writeError(w, http.StatusNotFound, "roadtrip not found")
		return
	}
	if rt.Author != p.Username {
		writeError(w, http.StatusForbidden, "you don't have permission to delete this roadtrip")
		return
	}

	if err := h.store.RemoveRoadtrip(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "roadtrip not found")
			return
		}
		h.log.Error("delete roadtrip failed", "roadtrip_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.cache.Delete(r.Context(), id); err != nil {
		h.log.Warn("cache delete failed after delete", "roadtrip_id", id, "err", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "roadtrip deleted successfully"})
}
