package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"lenslink/internal/models"
	"lenslink/internal/services"
)

type PartnerHandler struct {
	Service *services.PartnerService
}

func (h *PartnerHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var partner models.Partner
	if err := json.NewDecoder(r.Body).Decode(&partner); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	partner.UserID = actorID(r)

	created, err := h.Service.CreateProfile(r.Context(), partner)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPartnerProfileExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, models.ErrInvalidCategory):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create partner profile")
		}
		return
	}
	writeJSON(w, http.StatusCreated, "Partner profile created", created)
}

func (h *PartnerHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	partner, err := h.Service.GetProfileByUserID(r.Context(), actorID(r))
	if err != nil {
		if errors.Is(err, models.ErrPartnerNotFound) {
			writeError(w, http.StatusNotFound, "Partner profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load partner profile")
		return
	}
	writeJSON(w, http.StatusOK, "OK", partner)
}

func (h *PartnerHandler) GetPartnerByID(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid partner ID")
		return
	}
	partner, err := h.Service.GetPartnerByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrPartnerNotFound) {
			writeError(w, http.StatusNotFound, "Partner not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load partner")
		return
	}
	writeJSON(w, http.StatusOK, "OK", partner)
}

func (h *PartnerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var partner models.Partner
	if err := json.NewDecoder(r.Body).Decode(&partner); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Service.UpdateProfile(r.Context(), actorID(r), partner)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPartnerNotFound):
			writeError(w, http.StatusNotFound, "Partner profile not found")
		case errors.Is(err, models.ErrInvalidCategory):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update partner profile")
		}
		return
	}
	writeJSON(w, http.StatusOK, "Partner profile updated", updated)
}

func leadFilterFromQuery(r *http.Request) models.LeadFilter {
	filter := models.LeadFilter{
		Status:   r.URL.Query().Get("status"),
		Category: models.ServiceCategory(r.URL.Query().Get("category")),
		City:     r.URL.Query().Get("city"),
	}
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.EndDate = &t
		}
	}
	return filter
}

func (h *PartnerHandler) GetLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Service.GetLeads(r.Context(), actorID(r), leadFilterFromQuery(r))
	if err != nil {
		if errors.Is(err, models.ErrPartnerNotFound) {
			writeError(w, http.StatusNotFound, "Partner profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load leads")
		return
	}
	writeJSON(w, http.StatusOK, "OK", leads)
}

func (h *PartnerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats(r.Context(), actorID(r))
	if err != nil {
		if errors.Is(err, models.ErrPartnerNotFound) {
			writeError(w, http.StatusNotFound, "Partner profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, "OK", stats)
}

// VerifyPartner is the admin decision endpoint.
func (h *PartnerHandler) VerifyPartner(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid partner ID")
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

	partner, err := h.Service.Verify(r.Context(), id, req.Status, req.Comment, actorID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPartnerNotFound):
			writeError(w, http.StatusNotFound, "Partner not found")
		case errors.Is(err, models.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Status must be approved or rejected")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update verification")
		}
		return
	}
	writeJSON(w, http.StatusOK, "Verification updated", partner)
}

func (h *PartnerHandler) ListVerificationRequests(w http.ResponseWriter, r *http.Request) {
	partners, err := h.Service.ListVerificationRequests(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load verification requests")
		return
	}
	writeJSON(w, http.StatusOK, "OK", partners)
}
