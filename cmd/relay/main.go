package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/messaging"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/outbox"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/config"
)

func main() {
	cfg := config.LoadRelayConfig()
	logger := config.NewLogger(cfg.LogLevel)
	logger.Info("relay: starting outbox relay service")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("relay: failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.QueueName)
	if err != nil {
		logger.Error("relay: failed to connect to RabbitMQ", slog.Any("error", err))
		os.Exit(1)
	}
	defer broker.Close()
	logger.Info("relay: connected to RabbitMQ", slog.String("queue", cfg.QueueName))

	relayWorker := outbox.NewRelay(db, cfg.DatabaseURL, broker, logger)

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, relayWorker.IsHealthy())
	})
	healthMux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, relayWorker.IsReady())
	})

	healthServer := &http.Server{
		Addr:              cfg.HealthAddr,
		Handler:           healthMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("relay: starting health check server", slog.String("addr", cfg.HealthAddr))
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("relay: health server error", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		if err := relayWorker.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("relay: received signal, initiating shutdown", slog.String("signal", sig.String()))
	case err := <-errChan:
		logger.Error("relay: fatal error, shutting down", slog.Any("error", err))
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("relay: error shutting down health server", slog.Any("error", err))
	}

	logger.Info("relay: shutdown complete")
}

func writeStatus(w http.ResponseWriter, up bool) {
	status, code := "UP", http.StatusOK
	if !up {
		status, code = "DOWN", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":    status,
		"component": "outbox-relay",
	})
}
