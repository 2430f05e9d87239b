// Package mocks provides mock implementations of port interfaces for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/domain"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

// MockDirectorySource implements ports.DirectorySource with a fixed snapshot.
type MockDirectorySource struct {
	mu sync.Mutex

	Snapshot domain.DirectorySnapshot

	// Error injection for testing directory outages
	FetchError error

	FetchCallCount int
}

var _ ports.DirectorySource = (*MockDirectorySource)(nil)

func NewMockDirectorySource(students ...domain.Student) *MockDirectorySource {
	return &MockDirectorySource{Snapshot: students}
}

func (m *MockDirectorySource) Fetch(ctx context.Context) (domain.DirectorySnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCallCount++
	if m.FetchError != nil {
		return nil, m.FetchError
	}

	out := make(domain.DirectorySnapshot, len(m.Snapshot))
	copy(out, m.Snapshot)
	return out, nil
}

func (m *MockDirectorySource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchCallCount
}

// MockDirectoryClient implements ports.DirectoryClient directly.
type MockDirectoryClient struct {
	Snapshot domain.DirectorySnapshot
}

var _ ports.DirectoryClient = (*MockDirectoryClient)(nil)

func (m *MockDirectoryClient) FetchAll(ctx context.Context) domain.DirectorySnapshot {
	return m.Snapshot
}

// Student builds a directory record for tests.
func Student(email, password string, attrs map[string]any) domain.Student {
	return domain.Student{Email: email, Password: password, Attributes: attrs}
}
