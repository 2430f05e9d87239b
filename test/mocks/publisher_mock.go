package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

// MockVerificationPublisher implements ports.VerificationEventPublisher for
// testing the outbox relay without a RabbitMQ connection.
type MockVerificationPublisher struct {
	mu sync.RWMutex

	PublishedEvents  []ports.VerificationEvent
	PublishError     error
	PublishCallCount int
}

var _ ports.VerificationEventPublisher = (*MockVerificationPublisher)(nil)

func NewMockVerificationPublisher() *MockVerificationPublisher {
	return &MockVerificationPublisher{
		PublishedEvents: make([]ports.VerificationEvent, 0),
	}
}

func (m *MockVerificationPublisher) PublishVerification(ctx context.Context, evt ports.VerificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++
	if m.PublishError != nil {
		return m.PublishError
	}
	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

func (m *MockVerificationPublisher) GetPublishedEvents() []ports.VerificationEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.VerificationEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

func (m *MockVerificationPublisher) GetPublishCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PublishCallCount
}
