package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/directory"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/handler"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/metrics"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/repository"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/config"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/services"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)

	catalog, err := config.LoadCatalog(cfg.DepartmentsFile)
	if err != nil {
		logger.Error("failed to load department catalog", slog.Any("error", err))
		os.Exit(1)
	}

	comparer, err := services.NewSecretComparer(cfg.SecretComparison)
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if _, plain := comparer.(services.PlaintextComparer); plain {
		logger.Warn("secret comparison is plaintext; use constant_time or bcrypt outside trusted networks")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	dirClient := directory.NewClient(cfg.DirectoryBaseURL, cfg.DirectoryAPIKey, cfg.DirectoryTimeout, m)
	dirService := services.NewDirectoryService(dirClient, logger)
	identityService := services.NewIdentityService(dirService, comparer, cfg.InstitutionalDomain, logger)

	var db *sql.DB
	var recorder ports.VerificationRecorder
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()
		recorder = repository.NewSQLVerificationRepository(db)
		logger.Info("verification audit trail enabled")
	}

	router := handler.NewRouter(handler.RouterOptions{
		Identity:       handler.NewIdentityHandler(identityService, recorder, m, logger),
		Schedule:       handler.NewScheduleHandler(catalog),
		Health:         handler.NewHealthHandler(dirClient, db, logger),
		Gatherer:       registry,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.DirectoryTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr), slog.Int("departments", catalog.Len()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("could not start server", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("received signal, shutting down", slog.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down server", slog.Any("error", err))
	}
}
