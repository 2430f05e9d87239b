package ports

import "context"

// VerificationRecorder persists verification attempts together with the
// outbox row the relay publishes from.
type VerificationRecorder interface {
	RecordAttempt(ctx context.Context, evt VerificationEvent) error
}
