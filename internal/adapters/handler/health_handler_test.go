package handler_test

import (
	"bytes"
	"database/sql"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/lib/pq"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/handler"
)

type fakeBreaker struct{ state gobreaker.State }

func (f fakeBreaker) BreakerState() gobreaker.State { return f.state }

func TestHealthEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		state      gobreaker.State
		wantStatus int
		wantBody   string
	}{
		{"health", "/health", gobreaker.StateOpen, http.StatusOK, "UP"},
		{"live", "/health/live", gobreaker.StateClosed, http.StatusOK, "UP"},
		{"ready_closed", "/health/ready", gobreaker.StateClosed, http.StatusOK, "UP"},
		{"ready_half_open", "/health/ready", gobreaker.StateHalfOpen, http.StatusOK, "UP"},
		{"ready_open", "/health/ready", gobreaker.StateOpen, http.StatusServiceUnavailable, "DOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := handler.NewRouter(handler.RouterOptions{
				Health: handler.NewHealthHandler(fakeBreaker{state: tt.state}, nil, quietLogger()),
				Logger: quietLogger(),
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, decodeBody(t, rec)["status"])
		})
	}
}

func TestReady_NoDirectory(t *testing.T) {
	h := handler.NewHealthHandler(nil, nil, quietLogger())
	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReady_DatabaseDownLogsThroughInjectedLogger(t *testing.T) {
	db, err := sql.Open("postgres", "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1")
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := handler.NewHealthHandler(fakeBreaker{state: gobreaker.StateClosed}, db, logger)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	checks := decodeBody(t, rec)["checks"].(map[string]any)
	assert.Equal(t, "DOWN", checks["database"].(map[string]any)["status"])
	assert.Contains(t, buf.String(), "health: database ping failed")
}
