package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"problem-solver/internal/lock"
	"problem-solver/internal/service"
)

// ValidationErrorResponse is returned for rejected input
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondWithServiceError maps the service error taxonomy onto HTTP statuses
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *service.ValidationError
		externalErr   *service.ExternalServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgValidationFailed,
			Fields: validationErr.Fields,
		})
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, ErrMsgSubmissionNotFound)
	case errors.Is(err, service.ErrPrecondition):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrStatusConflict):
		respondWithError(w, http.StatusConflict, ErrMsgStatusChanged)
	case errors.Is(err, lock.ErrBusy):
		respondWithError(w, http.StatusConflict, ErrMsgBusy)
	case errors.As(err, &externalErr):
		slog.Error("External service failed", "service", externalErr.Service, "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusBadGateway, ErrMsgMailFailed)
	default:
		slog.Error("Request failed", "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)
	}
}
