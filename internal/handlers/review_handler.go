package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lenslink/internal/models"
	"lenslink/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var rev models.Review
	if err := json.NewDecoder(r.Body).Decode(&rev); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	rev.ClientID = actorID(r)

	created, err := h.Service.CreateReview(r.Context(), rev)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidRating):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrPartnerNotFound):
			writeError(w, http.StatusNotFound, "Partner not found")
		case errors.Is(err, models.ErrAlreadyReviewed):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create review")
		}
		return
	}
	writeJSON(w, http.StatusCreated, "Review submitted", created)
}

func (h *ReviewHandler) GetPartnerReviews(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := intParam(r, "partner_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid partner ID")
		return
	}
	reviews, err := h.Service.GetPartnerReviews(r.Context(), partnerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, "OK", reviews)
}

func (h *ReviewHandler) Reply(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}
	var req struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reply == "" {
		writeError(w, http.StatusBadRequest, "A non-empty reply is required")
		return
	}

	rev, err := h.Service.Reply(r.Context(), id, actorID(r), req.Reply)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrReviewNotFound):
			writeError(w, http.StatusNotFound, "Review not found")
		case errors.Is(err, models.ErrPartnerNotFound):
			writeError(w, http.StatusNotFound, "Partner profile not found")
		case errors.Is(err, models.ErrNotReviewRecipient):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to save reply")
		}
		return
	}
	writeJSON(w, http.StatusOK, "Reply saved", rev)
}

func (h *ReviewHandler) ListForModeration(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.ListForModeration(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, "OK", reviews)
}

func (h *ReviewHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}
	var req struct {
		Status  string `json:"status"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rev, err := h.Service.Moderate(r.Context(), id, req.Status, req.Comment, actorID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrReviewNotFound):
			writeError(w, http.StatusNotFound, "Review not found")
		case errors.Is(err, models.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Status must be approved or rejected")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to moderate review")
		}
		return
	}
	writeJSON(w, http.StatusOK, "Review moderated", rev)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}
	if err := h.Service.DeleteReview(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrReviewNotFound) {
			writeError(w, http.StatusNotFound, "Review not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
