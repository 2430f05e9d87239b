package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerReporter exposes the state of a dependency's circuit breaker.
type BreakerReporter interface {
	BreakerState() gobreaker.State
}

type HealthHandler struct {
	directory BreakerReporter
	db        *sql.DB
	logger    *slog.Logger
	startTime time.Time
	version   string
}

// NewHealthHandler builds the health endpoints. db may be nil when the
// verification audit trail is disabled.
func NewHealthHandler(directory BreakerReporter, db *sql.DB, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		directory: directory,
		db:        db,
		logger:    logger,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse follows Kubernetes/OpenShift health check conventions
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is a simple liveness check - just confirms the process is running
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	})
}

// Ready reports whether the service can currently answer identity requests.
// An open directory breaker means every resolution would come back empty.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]Check)
	status := "UP"
	httpStatus := http.StatusOK

	dirCheck := h.checkDirectory()
	checks["directory"] = dirCheck
	if dirCheck.Status != "UP" {
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	if h.db != nil {
		dbCheck := h.checkDatabase(r.Context())
		checks["database"] = dbCheck
		if dbCheck.Status != "UP" {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, httpStatus, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

// Live is an alias for Health
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

func (h *HealthHandler) checkDirectory() Check {
	if h.directory == nil {
		return Check{Status: "DOWN", Message: "Directory client is not initialized"}
	}
	if h.directory.BreakerState() == gobreaker.StateOpen {
		return Check{Status: "DOWN", Message: "Directory circuit breaker is open"}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.WarnContext(ctx, "health: database ping failed", slog.Any("error", err))
		return Check{
			Status:  "DOWN",
			Message: "Cannot connect to database",
		}
	}
	return Check{Status: "UP"}
}
