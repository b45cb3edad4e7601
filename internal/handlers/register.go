package handlers

//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password, confirmPassword string) (*models.AuthResult, error)
}

// NewRegisterHandler returns an HTTP handler for account registration.
// @Summary Register a new account
// @Description Creates an account and returns it with a bearer token. Username and email must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "Account registration request"
// @Success 201 {object} models.Response{data=models.AuthResult} "Account created"
// @Failure 400 {object} models.Response "Validation failed"
// @Failure 409 {object} models.Response "Username or email already taken"
// @Failure 500 {object} models.Response "Internal server error"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest

		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", errBadBody)
			return
		}

		result, err := svc.Register(r.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
		if err != nil {
			if ve, ok := services.AsValidationError(err); ok {
				writeError(w, http.StatusBadRequest, "Validation failed", ve.Fields)
				return
			}
			if ce, ok := services.AsConflictError(err); ok {
				writeError(w, http.StatusConflict,
					fmt.Sprintf("User with this %s already exists", ce.Field),
					map[string]string{ce.Field: fmt.Sprintf("This %s is already taken", ce.Field)},
				)
				return
			}
			writeInternal(r.Context(), w, "registration failed", err)
			return
		}

		writeSuccess(w, http.StatusCreated, "Account created successfully", result)
	}
}
