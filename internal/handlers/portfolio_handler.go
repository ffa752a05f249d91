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

const maxUploadSize = 10 << 20 // 10 MB

type PortfolioHandler struct {
	Service  *services.PortfolioService
	Uploader *utils.Uploader
}

func (h *PortfolioHandler) GetOwnPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.Service.GetOwn(r.Context(), actorID(r))
	if err != nil {
		h.writePortfolioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "OK", portfolio)
}

func (h *PortfolioHandler) GetPartnerPortfolio(w http.ResponseWriter, r *http.Request) {
	partnerID, ok := intParam(r, "partner_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid partner ID")
		return
	}
	portfolio, err := h.Service.GetByPartnerID(r.Context(), partnerID)
	if err != nil {
		h.writePortfolioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "OK", portfolio)
}

func (h *PortfolioHandler) UpsertPortfolio(w http.ResponseWriter, r *http.Request) {
	var portfolio models.Portfolio
	if err := json.NewDecoder(r.Body).Decode(&portfolio); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	saved, err := h.Service.CreateOrUpdate(r.Context(), actorID(r), portfolio)
	if err != nil {
		h.writePortfolioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Portfolio saved", saved)
}

// AddItem accepts either a JSON body with an image_url, or a multipart form
// with an "image" file that gets stored on S3 first.
func (h *PortfolioHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if item.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "Validation failed", "an image or image_url is required")
		return
	}

	created, err := h.Service.AddItem(r.Context(), actorID(r), item)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCategory) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writePortfolioError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Item added", created)
}

func (h *PortfolioHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := intParam(r, "item_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}
	item, err := h.itemFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.ID = itemID

	updated, err := h.Service.UpdateItem(r.Context(), actorID(r), item)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCategory) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writePortfolioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Item updated", updated)
}

func (h *PortfolioHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := intParam(r, "item_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}
	portfolio, err := h.Service.DeleteItem(r.Context(), actorID(r), itemID)
	if err != nil {
		h.writePortfolioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Item deleted", portfolio)
}

func (h *PortfolioHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []models.ItemOrder `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	portfolio, err := h.Service.Reorder(r.Context(), actorID(r), req.Items)
	if err != nil {
		h.writePortfolioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "Items reordered", portfolio)
}

func (h *PortfolioHandler) writePortfolioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrPartnerNotFound):
		writeError(w, http.StatusNotFound, "Partner profile not found")
	case errors.Is(err, models.ErrPortfolioNotFound):
		writeError(w, http.StatusNotFound, "Portfolio not found")
	case errors.Is(err, models.ErrPortfolioItemNotFound):
		writeError(w, http.StatusNotFound, "Portfolio item not found")
	default:
		writeError(w, http.StatusInternalServerError, "Portfolio operation failed")
	}
}

func (h *PortfolioHandler) itemFromRequest(r *http.Request) (models.PortfolioItem, error) {
	var item models.PortfolioItem

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			return item, errors.New("invalid request body")
		}
		return item, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return item, errors.New("invalid multipart form")
	}
	item.Title = r.FormValue("title")
	item.Description = r.FormValue("description")
	item.Category = models.ServiceCategory(r.FormValue("category"))
	item.Location = r.FormValue("location")
	item.Featured, _ = strconv.ParseBool(r.FormValue("featured"))
	if raw := r.FormValue("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &item.Tags); err != nil {
			return item, errors.New("tags must be a JSON array of strings")
		}
	}
	if raw := r.FormValue("date_shot"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			item.DateShot = &t
		}
	}
	if raw := r.FormValue("image_url"); raw != "" {
		item.ImageURL = raw
		return item, nil
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return item, nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return item, errors.New("failed to read uploaded file")
	}
	fileName := uuid.New().String() + filepath.Ext(header.Filename)
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	url, err := h.Uploader.UploadFile(data, fileName, "portfolio", contentType)
	if err != nil {
		return item, errors.New("failed to store uploaded file")
	}
	item.ImageURL = url
	return item, nil
}
