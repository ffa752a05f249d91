package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lenslink/internal/models"
	"lenslink/internal/services"
)

type LocationHandler struct {
	Service *services.LocationService
}

func (h *LocationHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.GetLocations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load locations")
		return
	}
	writeJSON(w, http.StatusOK, "OK", locations)
}

func (h *LocationHandler) GetLocationByID(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid location ID")
		return
	}
	loc, err := h.Service.GetLocationByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrLocationNotFound) {
			writeError(w, http.StatusNotFound, "Location not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load location")
		return
	}
	writeJSON(w, http.StatusOK, "OK", loc)
}

func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var loc models.Location
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.Service.CreateLocation(r.Context(), loc)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateLocation) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create location")
		return
	}
	writeJSON(w, http.StatusCreated, "Location created", created)
}

func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid location ID")
		return
	}
	var loc models.Location
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	loc.ID = id

	updated, err := h.Service.UpdateLocation(r.Context(), loc)
	if err != nil {
		if errors.Is(err, models.ErrLocationNotFound) {
			writeError(w, http.StatusNotFound, "Location not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update location")
		return
	}
	writeJSON(w, http.StatusOK, "Location updated", updated)
}

func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid location ID")
		return
	}
	if err := h.Service.DeleteLocation(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrLocationNotFound) {
			writeError(w, http.StatusNotFound, "Location not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete location")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
