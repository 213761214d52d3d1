package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bloodlink-backend/internal/logger"
	"bloodlink-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps service errors onto HTTP statuses. Unrecognized
// errors become a 500 without leaking their text to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrAccountBlocked),
		errors.Is(err, service.ErrSelfTarget),
		errors.Is(err, service.ErrSelfAssign):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrRequestNotAvailable),
		errors.Is(err, service.ErrDuplicateTransaction):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotEditable),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAmountTooSmall):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrPaymentNotConfirmed):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.Error("Unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
