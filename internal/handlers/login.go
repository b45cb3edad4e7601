package handlers

//go:generate mockgen -source=login.go -destination=mock_login.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
)

// Authenticator defines the interface that the service must implement.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (*models.AuthResult, error)
}

// NewLoginHandler returns an HTTP handler for login.
// @Summary Log in
// @Description Authenticates with a username or email and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login request"
// @Success 200 {object} models.Response{data=models.AuthResult} "Signed in"
// @Failure 400 {object} models.Response "Validation failed"
// @Failure 401 {object} models.Response "Invalid credentials"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /auth/login [post]
func NewLoginHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", errBadBody)
			return
		}

		result, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			if ve, ok := services.AsValidationError(err); ok {
				writeError(w, http.StatusBadRequest, "Validation failed", ve.Fields)
				return
			}
			if errors.Is(err, services.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid credentials",
					map[string]string{"username": "Invalid username or password"})
				return
			}
			writeInternal(r.Context(), w, "login failed", err)
			return
		}

		writeSuccess(w, http.StatusOK, "Sign in successful", result)
	}
}
