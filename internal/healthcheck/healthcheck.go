package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-blog/internal/logger"
)

// DefaultTimeout bounds a single dependency check.
const DefaultTimeout = 2 * time.Second

// Check probes a single dependency.
type Check func(ctx context.Context) error

// DBCheck pings the database pool.
func DBCheck(db *sqlx.DB) Check {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

// RedisCheck pings the redis server.
func RedisCheck(client redis.UniversalClient) Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// Status is the body returned by the HTTP health endpoint.
// swagger:model HealthStatus
type Status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Run executes every check and reports whether all of them passed.
// Failing checks map to their error text, passing ones to "ok".
func Run(ctx context.Context, checks map[string]Check) (map[string]string, bool) {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(checks))
	healthy := true
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, DefaultTimeout)
		err := checks[name](checkCtx)
		cancel()

		if err != nil {
			healthy = false
			results[name] = err.Error()
			logger.Log.Warnw("health check failed", "check", name, "error", err)
			continue
		}
		results[name] = "ok"
	}
	return results, healthy
}

// NewHandler returns an HTTP handler reporting the health of the service.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} healthcheck.Status "All dependencies reachable"
// @Failure 503 {object} healthcheck.Status "A dependency is unreachable"
// @Router /healthz [get]
func NewHandler(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, healthy := Run(r.Context(), checks)

		status := http.StatusOK
		body := Status{Status: "ok", Checks: results}
		if !healthy {
			status = http.StatusServiceUnavailable
			body.Status = "unavailable"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
