package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lenslink/internal/models"
	"lenslink/internal/services"
)

type UserHandler struct {
	Service       *services.UserService
	Notifications *services.NotificationService
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if user.Password == "" || (user.Email == "" && user.Phone == "") {
		writeError(w, http.StatusBadRequest, "Validation failed", "email or phone and password are required")
		return
	}

	result, err := h.Service.SignUp(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateEmail), errors.Is(err, models.ErrDuplicatePhone):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}
	writeJSON(w, http.StatusCreated, "User registered", result)
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}
	writeJSON(w, http.StatusOK, "Signed in", result)
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUserByID(r.Context(), actorID(r))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, "OK", user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user.ID = actorID(r)

	updated, err := h.Service.UpdateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, "User updated", updated)
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteUser(r.Context(), actorID(r)); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) RegisterDeviceToken(w http.ResponseWriter, r *http.Request) {
	var token models.FCMToken
	if err := json.NewDecoder(r.Body).Decode(&token); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	token.UserID = actorID(r)
	if token.Token == "" {
		writeError(w, http.StatusBadRequest, "Validation failed", "token is required")
		return
	}
	if err := h.Notifications.RegisterToken(r.Context(), token); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save token")
		return
	}
	writeJSON(w, http.StatusCreated, "Token registered", nil)
}

func (h *UserHandler) RemoveDeviceToken(w http.ResponseWriter, r *http.Request) {
	if err := h.Notifications.RemoveToken(r.Context(), actorID(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete token")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
