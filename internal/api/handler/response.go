package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"loan-offers/internal/api/handler/dto"
	"loan-offers/internal/api/middleware"
	"loan-offers/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: could not read request body: %v", apperrors.ErrInvalidArgument, err)
	}
	return body, nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	var fieldErrors *apperrors.FieldErrors
	if errors.As(err, &fieldErrors) {
		respondJSON(w, http.StatusBadRequest, fieldErrors)
		return
	}

	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Not found."
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized"
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &appErr):
		slog.Default().Error("Application error", "code", appErr.Code, "error", err)
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

// RespondNotFound answers requests that match no route.
func RespondNotFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, apperrors.ErrNotFound)
}

func RespondMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{
		Error: dto.ErrorDetail{Message: fmt.Sprintf("Method \"%s\" not allowed.", r.Method)},
	})
}

// requestSubject names the caller for audit log records.
func requestSubject(ctx context.Context) string {
	if sub, ok := middleware.Subject(ctx); ok && sub != "" {
		return sub
	}
	return "anonymous"
}

func getIDFromURL(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return 0, fmt.Errorf("%w: %s not found in URL path", apperrors.ErrNotFound, param)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		// Routes only match digits, so this is an id beyond any stored row.
		return 0, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, param, idStr)
	}
	return id, nil
}
