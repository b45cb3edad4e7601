package healthcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func TestHandler(t *testing.T) {
	tests := []struct {
		name         string
		checks       map[string]Check
		expectedCode int
		expected     Status
	}{
		{
			name:         "all healthy",
			checks:       map[string]Check{"postgres": ok, "redis": ok},
			expectedCode: http.StatusOK,
			expected:     Status{Status: "ok", Checks: map[string]string{"postgres": "ok", "redis": "ok"}},
		},
		{
			name: "redis down",
			checks: map[string]Check{
				"postgres": ok,
				"redis":    func(context.Context) error { return errors.New("connection refused") },
			},
			expectedCode: http.StatusServiceUnavailable,
			expected:     Status{Status: "unavailable", Checks: map[string]string{"postgres": "ok", "redis": "connection refused"}},
		},
		{
			name:         "no checks",
			checks:       nil,
			expectedCode: http.StatusOK,
			expected:     Status{Status: "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NewHandler(tt.checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.expectedCode, rr.Code)

			var got Status
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRun_ChecksHaveDeadline(t *testing.T) {
	_, healthy := Run(context.Background(), map[string]Check{
		"deadline": func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				return errors.New("no deadline")
			}
			return nil
		},
	})
	assert.True(t, healthy)
}

func TestDBCheck(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "sqlmock")
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, DBCheck(db)(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("db down"))
	assert.EqualError(t, DBCheck(db)(context.Background()), "db down")

	assert.NoError(t, mock.ExpectationsWereMet())
}
