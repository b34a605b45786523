package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/roadbook/roadbook/internal/journal"
	"github.com/roadbook/roadbook/internal/store"
)

// Magazines are addressed through the request body rather than the path,
// matching the public API: PUT and DELETE carry a magazine_id field.

// CreateMagazine handles POST /magazines.
func (h *Handlers) CreateMagazine(w http.ResponseWriter, r *http.Request) {
	var req createMagazineRequest
	if !h.decode(w, r, &req) {
		return
	}

	mag := &journal.Magazine{
		ID:          uuid.NewString(),
		Name:        req.Title,
		Description: req.Description,
	}

	if err := h.store.AddMagazine(r.Context(), mag); err != nil {
		h.log.Error("create magazine failed", "name", req.Title, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"detail":   "magazine created successfully",
		"magazine": projectMagazine(mag),
	})
}

// ListMagazines handles GET /magazines.
func (h *Handlers) ListMagazines(w http.ResponseWriter, r *http.Request) {
	mags, err := h.store.ListMagazines(r.Context())
	if err != nil {
		h.log.Error("list magazines failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]magazineResponse, 0, len(mags))
	for i := range mags {
		out = append(out, projectMagazine(&mags[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateMagazine handles PUT /magazines. Absent fields keep their stored
// values; add_roadtrip_id and remove_roadtrip_id mutate the reference list
// without checking that the roadtrip exists.
func (h *Handlers) UpdateMagazine(w http.ResponseWriter, r *http.Request) {
	var req updateMagazineRequest
	if !h.decode(w, r, &req) {
		return
	}

	mag, err := h.store.GetMagazine(r.Context(), req.MagazineID)
	if err != nil {
		h.log.Error("magazine lookup failed", "magazine_id", req.MagazineID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if mag == nil {
		writeError(w, http.StatusNotFound, "magazine not found")
		return
	}

	if req.Title != nil {
		mag.Name = *req.Title
	}
	if req.Description != nil {
		mag.Description = *req.Description
	}
	if req.AddRoadtripID != nil && *req.AddRoadtripID != "" && !mag.HasRoadtrip(*req.AddRoadtripID) {
		mag.RoadtripIDs = append(mag.RoadtripIDs, *req.AddRoadtripID)
	}
	if req.RemoveRoadtripID != nil && *req.RemoveRoadtripID != "" {
		for i, rid := range mag.RoadtripIDs {
			if rid == *req.RemoveRoadtripID {
				mag.RoadtripIDs = append(mag.RoadtripIDs[:i], mag.RoadtripIDs[i+1:]...)
				break
			}
		}
	}

	if err := h.store.UpdateMagazine(r.Context(), mag); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "magazine not found")
			return
		}
		h.log.Error("update magazine failed", "magazine_id", req.MagazineID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"detail":   "magazine edited successfully",
		"magazine": projectMagazine(mag),
	})
}

// DeleteMagazine handles DELETE /magazines.
func (h *Handlers) DeleteMagazine(w http.ResponseWriter, r *http.Request) {
	var req deleteMagazineRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.store.RemoveMagazine(r.Context(), req.MagazineID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "magazine not found")
			return
		}
		h.log.Error("delete magazine failed", "magazine_id", req.MagazineID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"detail": "magazine deleted successfully"})
}
