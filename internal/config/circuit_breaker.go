package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

const (
	BreakerDirectory        = "Student-Directory"
	BreakerPostgres         = "PostgreSQL"
	BreakerRelayPostgres    = "Relay-PostgreSQL"
	BreakerRabbitMQ         = "RabbitMQ-Publisher"
	breakerTripAfterFailure = 3
)

// ErrCallerGone marks a call abandoned by its own caller. Breakers count it as
// a success.
var ErrCallerGone = errors.New("caller went away")

// NewCircuitBreaker creates a circuit breaker with standard settings.
// The name parameter uniquely identifies the circuit breaker instance.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	var timeout time.Duration

	// Open-state timeouts line up with the 5s health check timeout.
	switch name {
	case BreakerDirectory:
		timeout = time.Second * 5
	case BreakerPostgres, BreakerRelayPostgres:
		timeout = time.Second * 10
	default:
		timeout = time.Second * 30
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfterFailure
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrCallerGone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Error("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}
