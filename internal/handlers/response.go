package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
)

const maxBodyBytes = 1 << 20

var errServer = map[string]string{"server": "Something went wrong. Please try again later."}

var errBadBody = map[string]string{"body": "Request body must be a JSON object"}

func writeJSON(w http.ResponseWriter, status int, body models.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, models.Response{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string, errs map[string]string) {
	writeJSON(w, status, models.Response{Message: message, Errors: errs})
}

// writeInternal logs err with the request id and answers with a generic 500.
func writeInternal(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	logger.FromContext(ctx).Errorw(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error", errServer)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// currentAccountID returns the account attached by the auth middleware,
// answering 401 when the route was mounted without it.
func currentAccountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	account, ok := middlewares.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return account.ID, true
}

// writePostError translates post service errors. validationStatus is the
// status used for field validation failures.
func writePostError(ctx context.Context, w http.ResponseWriter, err error, validationStatus int, msg string) {
	if ve, ok := services.AsValidationError(err); ok {
		writeError(w, validationStatus, "Validation failed", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, services.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid id", nil)
	case errors.Is(err, services.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "Blog post not found", nil)
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "You can only modify your own posts", nil)
	default:
		writeInternal(ctx, w, msg, err)
	}
}
