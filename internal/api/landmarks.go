package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roadbook/roadbook/internal/journal"
	"github.com/roadbook/roadbook/internal/store"
)

// ListLandmarks handles GET /landmarks: the full catalog, reviews included.
func (h *Handlers) ListLandmarks(w http.ResponseWriter, r *http.Request) {
	landmarks, err := h.store.ListLandmarks(r.Context())
	if err != nil {
		h.log.Error("list landmarks failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, landmarks)
}

// GetLandmark handles GET /landmarks/{landmarkID}.
func (h *Handlers) GetLandmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "landmarkID")

	landmark, err := h.store.GetLandmark(r.Context(), id)
	if err != nil {
		h.log.Error("landmark lookup failed", "landmark_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if landmark == nil {
		writeError(w, http.StatusNotFound, "landmark not found")
		return
	}
	writeJSON(w, http.StatusOK, landmark)
}

// CreateLandmark handles POST /landmarks. Admin only.
func (h *Handlers) CreateLandmark(w http.ResponseWriter, r *http.Request) {
	var req createLandmarkRequest
	if !h.decode(w, r, &req) {
		return
	}

	landmark := &journal.Landmark{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Amenity:      req.Amenity,
		Position:     req.Position,
		OpeningHours: req.OpeningHours,
	}

	if err := h.store.AddLandmark(r.Context(), landmark); err != nil {
		h.log.Error("create landmark failed", "name", req.Name, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"detail":      "landmark created",
		"landmark_id": landmark.ID,
	})
}

// DeleteLandmark handles DELETE /landmarks/{landmarkID}. Admin only. The
// landmark's reviews go with it.
func (h *Handlers) DeleteLandmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "landmarkID")

	if err := h.store.RemoveLandmark(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "landmark not found")
			return
		}
		h.log.Error("delete landmark failed", "landmark_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"detail": "landmark deleted"})
}
