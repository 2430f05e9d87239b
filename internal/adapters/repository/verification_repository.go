package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/config"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

const OutboxChannel = "outbox_channel"

// SQLVerificationRepository writes verification attempts and their outbox
// events to Postgres in a single transaction.
type SQLVerificationRepository struct {
	db *sql.DB
	cb *gobreaker.CircuitBreaker
}

var _ ports.VerificationRecorder = (*SQLVerificationRepository)(nil)

func NewSQLVerificationRepository(db *sql.DB) *SQLVerificationRepository {
	return &SQLVerificationRepository{
		db: db,
		cb: config.NewCircuitBreaker(config.BreakerPostgres),
	}
}

func (r *SQLVerificationRepository) RecordAttempt(ctx context.Context, evt ports.VerificationEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("repository: marshal verification event: %w", err)
	}

	_, err = r.cb.Execute(func() (interface{}, error) {
		return nil, r.recordAttempt(ctx, evt, payload)
	})
	if err != nil {
		return fmt.Errorf("repository: record verification attempt: %w", err)
	}
	return nil
}

func (r *SQLVerificationRepository) recordAttempt(ctx context.Context, evt ports.VerificationEvent, payload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO verification_attempts (id, canonical_email, outcome, occurred_at) VALUES ($1, $2, $3, $4)",
		evt.AttemptID,
		evt.CanonicalEmail,
		string(evt.Outcome),
		evt.OccurredAt,
	)
	if err != nil {
		return err
	}

	outboxID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO outbox_events (id, event_type, payload, created_at) VALUES ($1, $2, $3, $4)",
		outboxID,
		ports.VerificationEventType,
		payload,
		evt.OccurredAt,
	)
	if err != nil {
		return err
	}

	// Delivered to listeners on commit.
	if _, err := tx.ExecContext(ctx, "SELECT pg_notify($1, $2)", OutboxChannel, outboxID); err != nil {
		return err
	}

	return tx.Commit()
}
