package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/repository"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/config"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

const (
	// PostgreSQL NOTIFY/LISTEN configuration
	listenerMinReconnectInterval = 10 * time.Second
	listenerMaxReconnectInterval = time.Minute

	// Event processing timeouts
	eventProcessTimeout     = 30 * time.Second
	batchProcessTimeout     = 60 * time.Second
	periodicProcessInterval = 90 * time.Second

	healthCheckStaleThreshold = 5 * time.Minute

	maxEventsPerBatch = 100
)

type record struct {
	ID        string
	EventType string
	Payload   []byte
}

// Relay listens for PostgreSQL NOTIFY signals on the outbox channel and
// publishes verification events to RabbitMQ.
type Relay struct {
	db        *sql.DB
	publisher ports.VerificationEventPublisher
	dbURL     string
	dbCB      *gobreaker.CircuitBreaker
	logger    *slog.Logger

	mu            sync.RWMutex
	lastProcessed time.Time
	healthy       bool
}

func NewRelay(db *sql.DB, dbURL string, publisher ports.VerificationEventPublisher, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		db:            db,
		dbURL:         dbURL,
		publisher:     publisher,
		dbCB:          config.NewCircuitBreaker(config.BreakerRelayPostgres),
		logger:        logger,
		lastProcessed: time.Now(),
		healthy:       true,
	}
}

// IsHealthy reports process liveness only; an open breaker is degraded but
// recoverable and must not restart the pod.
func (r *Relay) IsHealthy() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.healthy
}

// IsReady returns true if the relay can process events (for readiness probes).
func (r *Relay) IsReady() bool {
	if r.dbCB.State() == gobreaker.StateOpen {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if time.Since(r.lastProcessed) > healthCheckStaleThreshold {
		return false
	}
	return r.healthy
}

func (r *Relay) markProcessed(healthy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastProcessed = time.Now()
	r.healthy = healthy
}

func (r *Relay) setHealthy(healthy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.healthy = healthy
}

// Start begins listening for outbox notifications and processing events.
// It blocks until the context is cancelled.
func (r *Relay) Start(ctx context.Context) error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			r.logger.Error("relay: listener error", slog.Any("error", err))
		}
	}

	listener := pq.NewListener(r.dbURL, listenerMinReconnectInterval, listenerMaxReconnectInterval, reportProblem)
	defer listener.Close()

	if err := listener.Listen(repository.OutboxChannel); err != nil {
		return err
	}

	r.logger.Info("relay: listening for notifications", slog.String("channel", repository.OutboxChannel))

	// Catch up on anything written while the relay was down.
	if err := r.ProcessPending(ctx); err != nil {
		r.logger.Error("relay: error processing startup backlog", slog.Any("error", err))
	}

	ticker := time.NewTicker(periodicProcessInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("relay: shutting down")
			return ctx.Err()

		case notification := <-listener.Notify:
			if notification == nil {
				r.logger.Warn("relay: received nil notification (reconnecting)")
				r.setHealthy(false)
				continue
			}

			if err := r.processEventByID(ctx, notification.Extra); err != nil {
				r.logger.Error("relay: error processing event",
					slog.String("event_id", notification.Extra),
					slog.Any("error", err),
				)
			} else {
				r.markProcessed(true)
			}

		case <-ticker.C:
			go listener.Ping()

			if err := r.processUnprocessedEvents(ctx); err != nil {
				r.logger.Error("relay: error in periodic processing", slog.Any("error", err))
			} else {
				r.markProcessed(r.IsHealthy())
			}
		}
	}
}

// errInvalidPayload marks records that can never be published.
var errInvalidPayload = errors.New("invalid outbox payload")

// dispatch publishes one outbox record. Records of unknown types are skipped;
// records with an undecodable payload return errInvalidPayload.
func (r *Relay) dispatch(ctx context.Context, rec record) error {
	if rec.EventType != ports.VerificationEventType {
		r.logger.Warn("relay: skipping unknown event type",
			slog.String("event_id", rec.ID),
			slog.String("event_type", rec.EventType),
		)
		return nil
	}

	var evt ports.VerificationEvent
	if err := json.Unmarshal(rec.Payload, &evt); err != nil {
		return errInvalidPayload
	}
	return r.publisher.PublishVerification(ctx, evt)
}

// markFunc records an outbox row as processed.
type markFunc func(ctx context.Context, id string) error

// settle dispatches rec. Invalid payloads are logged and reported as settled,
// since they can never be published and must not be retried forever.
func (r *Relay) settle(ctx context.Context, rec record) error {
	err := r.dispatch(ctx, rec)
	if errors.Is(err, errInvalidPayload) {
		r.logger.Error("relay: invalid payload", slog.String("event_id", rec.ID))
		return nil
	}
	return err
}

// publishBatch settles each record in order and marks the settled ones. A
// publish failure leaves that row pending and moves on; a mark failure aborts.
func (r *Relay) publishBatch(ctx context.Context, records []record, mark markFunc) error {
	for _, rec := range records {
		if err := r.settle(ctx, rec); err != nil {
			r.logger.Error("relay: failed to publish event",
				slog.String("event_id", rec.ID),
				slog.Any("error", err),
			)
			continue
		}
		if err := mark(ctx, rec.ID); err != nil {
			return err
		}
		r.logger.Debug("relay: processed event", slog.String("event_id", rec.ID))
	}
	return nil
}

func markInTx(tx *sql.Tx) markFunc {
	return func(ctx context.Context, id string) error {
		_, err := tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, id)
		return err
	}
}

func (r *Relay) processEventByID(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, eventProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		var rec record
		err = tx.QueryRowContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE id = $1 AND processed_at IS NULL
			FOR UPDATE SKIP LOCKED`, eventID).Scan(&rec.ID, &rec.EventType, &rec.Payload)

		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		if err := r.settle(ctx, rec); err != nil {
			return nil, err
		}
		if err := markInTx(tx)(ctx, rec.ID); err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	})
	return err
}

// processUnprocessedEvents processes all pending events (catch-up/recovery).
func (r *Relay) processUnprocessedEvents(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, batchProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		rows, err := tx.QueryContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE processed_at IS NULL
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED`, maxEventsPerBatch)
		if err != nil {
			return nil, err
		}

		var records []record
		for rows.Next() {
			var rec record
			if err := rows.Scan(&rec.ID, &rec.EventType, &rec.Payload); err != nil {
				rows.Close()
				return nil, err
			}
			records = append(records, rec)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}

		if err := r.publishBatch(ctx, records, markInTx(tx)); err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	})
	return err
}

// ProcessPending drains the current outbox backlog once.
func (r *Relay) ProcessPending(ctx context.Context) error {
	return r.processUnprocessedEvents(ctx)
}
