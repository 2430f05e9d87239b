package services

import (
	"context"
	"log/slog"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/domain"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

// FetchResult is the tagged outcome of one directory fetch: either a snapshot
// or the error that prevented getting one.
type FetchResult struct {
	Snapshot domain.DirectorySnapshot
	Err      error
}

func (r FetchResult) OK() bool { return r.Err == nil }

// DirectoryService turns a failing DirectorySource into the degrade-to-empty
// DirectoryClient contract. Callers of FetchAll cannot tell an empty directory
// from an unreachable one; Fetch keeps the distinction for callers that need it.
type DirectoryService struct {
	source ports.DirectorySource
	logger *slog.Logger
}

var _ ports.DirectoryClient = (*DirectoryService)(nil)

func NewDirectoryService(source ports.DirectorySource, logger *slog.Logger) *DirectoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectoryService{
		source: source,
		logger: logger,
	}
}

func (d *DirectoryService) Fetch(ctx context.Context) FetchResult {
	snapshot, err := d.source.Fetch(ctx)
	if err != nil {
		return FetchResult{Err: err}
	}
	return FetchResult{Snapshot: snapshot}
}

func (d *DirectoryService) FetchAll(ctx context.Context) domain.DirectorySnapshot {
	res := d.Fetch(ctx)
	if !res.OK() {
		d.logger.WarnContext(ctx, "directory: fetch failed, continuing with empty snapshot",
			slog.Any("error", res.Err),
		)
		return domain.DirectorySnapshot{}
	}
	return res.Snapshot
}
