package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"lenslink/internal/models"
	"lenslink/internal/services"
	"lenslink/utils"
)

type InquiryHandler struct {
	Service  *services.InquiryService
	Partners *services.PartnerService
	Uploader *utils.Uploader
}

// partnerIDFor resolves the caller's partner profile id. Returns 0 for
// actors without one.
func (h *InquiryHandler) partnerIDFor(r *http.Request) int {
	if actorRole(r) != models.RolePartner {
		return 0
	}
	partner, err := h.Partners.GetProfileByUserID(r.Context(), actorID(r))
	if err != nil {
		return 0
	}
	return partner.ID
}

// CreateInquiry accepts either a JSON body, or a multipart form with a
// "reference_image" file that gets stored on S3 first.
func (h *InquiryHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	inq, err := h.inquiryFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	inq.ClientID = actorID(r)

	created, err := h.Service.CreateInquiry(r.Context(), inq)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCategory), errors.Is(err, models.ErrInvalidBudget):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create inquiry")
		}
		return
	}
	writeJSON(w, http.StatusCreated, "Inquiry created", created)
}

func (h *InquiryHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid inquiry ID")
		return
	}

	inq, err := h.Service.GetInquiryForActor(r.Context(), id, actorID(r), actorRole(r), h.partnerIDFor(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInquiryNotFound):
			writeError(w, http.StatusNotFound, "Inquiry not found")
		case errors.Is(err, models.ErrNotInquiryOwner), errors.Is(err, models.ErrNotAssigned):
			writeError(w, http.StatusForbidden, "Not allowed to view this inquiry")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to load inquiry")
		}
		return
	}
	writeJSON(w, http.StatusOK, "OK", inq)
}

func (h *InquiryHandler) ListMyInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.Service.ListClientInquiries(r.Context(), actorID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load inquiries")
		return
	}
	writeJSON(w, http.StatusOK, "OK", inquiries)
}

func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid inquiry ID")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inq, err := h.Service.UpdateStatus(r.Context(), id, actorID(r), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInquiryNotFound):
			writeError(w, http.StatusNotFound, "Inquiry not found")
		case errors.Is(err, models.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrNotInquiryOwner):
			writeError(w, http.StatusForbidden, "Not the inquiry owner")
		case errors.Is(err, models.ErrInquiryClosed):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update status")
		}
		return
	}
	writeJSON(w, http.StatusOK, "Status updated", inq)
}

// Respond records the partner's reply on an assigned lead.
func (h *InquiryHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid inquiry ID")
		return
	}
	partnerID := h.partnerIDFor(r)
	if partnerID == 0 {
		writeError(w, http.StatusNotFound, "Partner profile not found")
		return
	}

	var req struct {
		Message   string            `json:"message"`
		Quotation *models.Quotation `json:"quotation,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Validation failed", "message is required")
		return
	}

	inq, err := h.Service.RecordResponse(r.Context(), id, partnerID, req.Message, req.Quotation)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInquiryNotFound):
			writeError(w, http.StatusNotFound, "Inquiry not found")
		case errors.Is(err, models.ErrNotAssigned):
			writeError(w, http.StatusForbidden, "Not assigned to this inquiry")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to record response")
		}
		return
	}
	writeJSON(w, http.StatusOK, "Response recorded", inq)
}

// Book finalises the client's partner choice. An unassigned partner id in
// the payload maps to 400, not 403.
func (h *InquiryHandler) Book(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid inquiry ID")
		return
	}
	var req struct {
		PartnerID int `json:"partner_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inq, err := h.Service.BookPartner(r.Context(), id, req.PartnerID, actorID(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInquiryNotFound):
			writeError(w, http.StatusNotFound, "Inquiry not found")
		case errors.Is(err, models.ErrNotInquiryOwner):
			writeError(w, http.StatusForbidden, "Not the inquiry owner")
		case errors.Is(err, models.ErrNotAssigned):
			writeError(w, http.StatusBadRequest, "Partner is not assigned to this inquiry")
		case errors.Is(err, models.ErrInquiryClosed):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to book partner")
		}
		return
	}
	writeJSON(w, http.StatusOK, "Partner booked", inq)
}

func (h *InquiryHandler) inquiryFromRequest(r *http.Request) (models.Inquiry, error) {
	var inq models.Inquiry

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&inq); err != nil {
			return inq, errors.New("invalid request body")
		}
		return inq, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return inq, errors.New("invalid multipart form")
	}
	inq.Category = models.ServiceCategory(r.FormValue("category"))
	inq.Title = r.FormValue("title")
	inq.Description = r.FormValue("description")
	inq.Location = models.InquiryLocation{
		City:    r.FormValue("city"),
		State:   r.FormValue("state"),
		Pincode: r.FormValue("pincode"),
		Address: r.FormValue("address"),
	}
	inq.Budget.Min, _ = strconv.ParseFloat(r.FormValue("budget_min"), 64)
	inq.Budget.Max, _ = strconv.ParseFloat(r.FormValue("budget_max"), 64)
	inq.Budget.Currency = r.FormValue("currency")
	if raw := r.FormValue("event_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			inq.EventDate = t
		}
	}
	if raw := r.FormValue("requirements"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &inq.Requirements); err != nil {
			return inq, errors.New("requirements must be a JSON array of strings")
		}
	}
	if raw := r.FormValue("reference_image_url"); raw != "" {
		inq.ReferenceImageURL = raw
		return inq, nil
	}

	file, header, err := r.FormFile("reference_image")
	if err != nil {
		return inq, nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return inq, errors.New("failed to read uploaded file")
	}
	fileName := uuid.New().String() + filepath.Ext(header.Filename)
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	url, err := h.Uploader.UploadFile(data, fileName, "inquiries", contentType)
	if err != nil {
		return inq, errors.New("failed to store uploaded file")
	}
	inq.ReferenceImageURL = url
	return inq, nil
}
