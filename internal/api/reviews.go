package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/roadbook/roadbook/internal/journal"
	"github.com/roadbook/roadbook/internal/store"
)

// ListReviews handles GET /reviews?user=. Without a filter every review of
// every landmark is returned; with ?user= only that user's reviews, and an
// unknown username is a 404.
func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")

	if user != "" {
		account, err := h.store.GetAccountByUsername(r.Context(), user)
		if err != nil {
			h.log.Error("account lookup failed", "username", user, "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if account == nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
	}

	landmarks, err := h.store.ListLandmarks(r.Context())
	if err != nil {
		h.log.Error("list landmarks failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := []reviewResponse{}
	for i := range landmarks {
		for j := range landmarks[i].Reviews {
			review := &landmarks[i].Reviews[j]
			if user != "" && review.Reviewer != user {
				continue
			}
			out = append(out, projectReview(&landmarks[i], review))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateReview handles POST /reviews. One review per principal per
// landmark; a second attempt is rejected with 400.
func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	p := principal(r.Context())

	var req createReviewRequest
	if !h.decode(w, r, &req) {
		return
	}

	landmark, err := h.store.GetLandmark(r.Context(), req.LandmarkID)
	if err != nil {
		h.log.Error("landmark lookup failed", "landmark_id", req.LandmarkID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if landmark == nil {
		writeError(w, http.StatusNotFound, "landmark not found")
		return
	}

	review := &journal.Review{
		ID:         uuid.NewString(),
		Reviewer:   p.Username,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	}

	if err := h.store.AddReview(r.Context(), req.LandmarkID, review); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			writeError(w, http.StatusBadRequest, "review already exists")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "landmark not found")
		default:
			h.log.Error("add review failed", "landmark_id", req.LandmarkID, "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"detail":    "review created",
		"review_id": review.ID,
	})
}

// UpdateReview handles PATCH /reviews/{reviewID}. Only the review's author
// may edit; the reviewer identity itself never changes.
func (h *Handlers) UpdateReview(w http.ResponseWriter, r *http.Request) {
	p := principal(r.Context())
	id := chi.URLParam(r, "reviewID")

	var req updateReviewRequest
	if !h.decode(w, r, &req) {
		return
	}

	landmark, err := h.store.GetLandmarkByReviewID(r.Context(), id)
	if err != nil {
		h.log.Error("review lookup failed", "review_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if landmark == nil {
		writeError(w, http.StatusNotFound, "review not found")
		return
	}

	review := landmark.ReviewByID(id)
	if review.Reviewer != p.Username {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	if req.ReviewText != nil {
		review.ReviewText = *req.ReviewText
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}

	if err := h.store.UpdateReview(r.Context(), review); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "review not found")
			return
		}
		h.log.Error("update review failed", "review_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"detail": "review edited"})
}

// DeleteReview handles DELETE /reviews/{reviewID}. Only the review's author
// may delete.
func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	p := principal(r.Context())
	id := chi.URLParam(r, "reviewID")

	landmark, err := h.store.GetLandmarkByReviewID(r.Context(), id)
	if err != nil {
		h.log.Error("review lookup failed", "review_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if landmark == nil {
		writeError(w, http.StatusNotFound, "review not found")
		return
	}

	if landmark.ReviewByID(id).Reviewer != p.Username {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	if err := h.store.RemoveReview(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "review not found")
			return
		}
		h.log.Error("delete review failed", "review_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"detail": "review deleted"})
}
