package handlers

//go:generate mockgen -source=account.go -destination=mock_account.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/middlewares"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
)

// AccountGetter defines the interface that the service must implement.
type AccountGetter interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// NewGetAccountHandler returns an HTTP handler for fetching an account by id.
// @Summary Get account
// @Description Returns the public account with the given id
// @Tags auth
// @Produce json
// @Param userID query string true "Account id"
// @Success 200 {object} models.Response{data=models.AccountEnvelope} "Account"
// @Failure 400 {object} models.Response "Invalid id"
// @Failure 401 {object} models.Response "Unauthorized"
// @Failure 404 {object} models.Response "Account not found"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /auth/getone [get]
// @Security BearerAuth
func NewGetAccountHandler(svc AccountGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := svc.GetByID(r.Context(), r.URL.Query().Get("userID"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidID):
				writeError(w, http.StatusBadRequest, "Invalid user ID format", nil)
			case errors.Is(err, services.ErrAccountNotFound):
				writeError(w, http.StatusNotFound, "User not found", nil)
			default:
				writeInternal(r.Context(), w, "failed to get account", err)
			}
			return
		}

		writeSuccess(w, http.StatusOK, "User retrieved successfully", models.AccountEnvelope{User: account})
	}
}

// NewMeHandler returns the account the bearer token belongs to.
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} models.Response{data=models.AccountEnvelope} "Account"
// @Failure 401 {object} models.Response "Unauthorized"
// @Router /auth/me [get]
// @Security BearerAuth
func NewMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, ok := middlewares.AccountFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		writeSuccess(w, http.StatusOK, "User retrieved successfully", models.AccountEnvelope{User: account})
	}
}

// NewVerifyHandler answers 200 when the bearer token is valid.
// @Summary Verify token
// @Tags auth
// @Produce json
// @Success 200 {object} models.Response "Token is valid"
// @Failure 401 {object} models.Response "Unauthorized"
// @Router /auth/verify [get]
// @Security BearerAuth
func NewVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, http.StatusOK, "Token is valid", nil)
	}
}

// NewLogoutHandler acknowledges a logout. Tokens are not revoked; the
// client discards its copy.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} models.Response "Logged out"
// @Failure 401 {object} models.Response "Unauthorized"
// @Router /auth/logout [post]
// @Security BearerAuth
func NewLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, http.StatusOK, "Logged out successfully", nil)
	}
}
