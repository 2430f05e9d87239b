package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

// MockVerificationRecorder implements ports.VerificationRecorder in memory.
type MockVerificationRecorder struct {
	mu sync.RWMutex

	Recorded    []ports.VerificationEvent
	RecordError error
}

var _ ports.VerificationRecorder = (*MockVerificationRecorder)(nil)

func NewMockVerificationRecorder() *MockVerificationRecorder {
	return &MockVerificationRecorder{}
}

func (m *MockVerificationRecorder) RecordAttempt(ctx context.Context, evt ports.VerificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordError != nil {
		return m.RecordError
	}
	m.Recorded = append(m.Recorded, evt)
	return nil
}

func (m *MockVerificationRecorder) Events() []ports.VerificationEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.VerificationEvent, len(m.Recorded))
	copy(events, m.Recorded)
	return events
}
