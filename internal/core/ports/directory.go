package ports

import (
	"context"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/domain"
)

// DirectorySource performs one fetch of the full student listing and reports
// failures as errors.
type DirectorySource interface {
	Fetch(ctx context.Context) (domain.DirectorySnapshot, error)
}

// DirectoryClient is the boundary used by identity resolution. FetchAll never
// fails: an unreachable directory is returned as an empty snapshot.
type DirectoryClient interface {
	FetchAll(ctx context.Context) domain.DirectorySnapshot
}
