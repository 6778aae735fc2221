package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/crudkit/internal/domain"
)

// writeServiceError maps domain errors to HTTP responses. Anything unmapped
// is logged and reported as a 500 without details.
func writeServiceError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]fieldError, len(verr.Errors))
		for i, fe := range verr.Errors {
			fields[i] = fieldError{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Code:   "VALIDATION",
			Fields: fields,
		})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "ALREADY_EXISTS", "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", "conflict")
	case errors.Is(err, domain.ErrUnknownField):
		writeError(w, http.StatusBadRequest, "UNKNOWN_FIELD", err.Error())
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
