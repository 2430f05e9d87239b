package ports

import (
	"context"
	"time"
)

const VerificationEventType = "student.verification"

type VerificationOutcome string

const (
	OutcomeVerified VerificationOutcome = "verified"
	OutcomeRejected VerificationOutcome = "rejected"
)

// VerificationEvent is published for every credential verification attempt.
// It never carries the supplied secret.
type VerificationEvent struct {
	AttemptID      string              `json:"attempt_id"`
	CanonicalEmail string              `json:"canonical_email"`
	Outcome        VerificationOutcome `json:"outcome"`
	OccurredAt     time.Time           `json:"occurred_at"`
}

type VerificationEventPublisher interface {
	PublishVerification(ctx context.Context, evt VerificationEvent) error
}
