package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/BlufyTeam/contacts/internal/entity"
)

type ResponseError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func SendErr(ctx context.Context, w http.ResponseWriter, code int, err error, msg string) {
	slog.ErrorContext(ctx, "api error", "error", err, "code", code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err = json.NewEncoder(w).Encode(ResponseError{Message: msg, Error: err.Error()})
	if err != nil {
		slog.ErrorContext(ctx, "api error", "error", err, "code", http.StatusInternalServerError)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "")
		return
	}
}

// SendDomainErr maps the error taxonomy to HTTP statuses and responds with
// the structured error body.
func SendDomainErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidInput), errors.Is(err, entity.ErrIncorrectRequestBody):
		SendErr(ctx, w, http.StatusBadRequest, err, "Invalid request")
	case errors.Is(err, entity.ErrInvalidCredentials):
		SendErr(ctx, w, http.StatusUnauthorized, err, "Invalid credentials")
	case errors.Is(err, entity.ErrUnauthorized),
		errors.Is(err, entity.ErrInvalidToken),
		errors.Is(err, entity.ErrTokenExpired):
		SendErr(ctx, w, http.StatusUnauthorized, err, "Unauthorized")
	case errors.Is(err, entity.ErrForbidden):
		SendErr(ctx, w, http.StatusForbidden, err, "Insufficient permissions")
	case errors.Is(err, entity.ErrNotFound):
		SendErr(ctx, w, http.StatusNotFound, err, "Not found")
	case errors.Is(err, entity.ErrAlreadyExists):
		SendErr(ctx, w, http.StatusConflict, err, "Already exists")
	case errors.Is(err, entity.ErrInUse):
		SendErr(ctx, w, http.StatusConflict, err, "Record is still referenced by dependent records")
	case errors.Is(err, entity.ErrFileTooLarge):
		SendErr(ctx, w, http.StatusRequestEntityTooLarge, err, "File too large (max 20 MB)")
	default:
		SendErr(ctx, w, http.StatusInternalServerError, err, "Internal error")
	}
}
