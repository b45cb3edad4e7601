package middlewares

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/jwt"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
	"github.com/sbilibin2017/gw-blog/internal/services"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AccountResolver loads the account a verified token was issued for.
type AccountResolver interface {
	Resolve(ctx context.Context, accountID uuid.UUID) (*models.Account, error)
}

var responseInternal = models.Response{Message: "Internal server error"}

type accountContextKey struct{}

// ContextWithAccount returns a copy of ctx carrying the authenticated account.
func ContextWithAccount(ctx context.Context, account *models.Account) context.Context {
	return context.WithValue(ctx, accountContextKey{}, account)
}

// AccountFromContext returns the account attached by AuthMiddleware.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(accountContextKey{}).(*models.Account)
	return account, ok && account != nil
}

// AuthMiddleware rejects requests without a valid bearer token for an
// existing account and attaches that account to the request context.
// Every rejection carries the same 401 body.
func AuthMiddleware(tokener Tokener, resolver AccountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				log.Infow("authorization failed", "reason", "no token", "err", err)
				unauthorized(w)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				log.Infow("authorization failed", "reason", "invalid token", "err", err)
				unauthorized(w)
				return
			}

			account, err := resolver.Resolve(ctx, claims.AccountID)
			if err != nil {
				if errors.Is(err, services.ErrAccountNotFound) {
					log.Infow("authorization failed", "reason", "unknown account", "account_id", claims.AccountID)
					unauthorized(w)
					return
				}
				log.Errorw("failed to resolve account", "account_id", claims.AccountID, "err", err)
				writeJSON(w, http.StatusInternalServerError, responseInternal)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithAccount(ctx, account)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, models.Response{Message: "Unauthorized"})
}

func writeJSON(w http.ResponseWriter, status int, body models.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
