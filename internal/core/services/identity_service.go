package services

import (
	"context"
	"log/slog"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/domain"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

// IdentityService resolves raw identifiers against the student directory and
// verifies identifier/secret pairs. It holds no mutable state; every call
// performs exactly one directory fetch.
type IdentityService struct {
	directory           ports.DirectoryClient
	comparer            ports.SecretComparer
	institutionalDomain string
	logger              *slog.Logger
}

var _ ports.IdentityService = (*IdentityService)(nil)

func NewIdentityService(
	directory ports.DirectoryClient,
	comparer ports.SecretComparer,
	institutionalDomain string,
	logger *slog.Logger,
) *IdentityService {
	if comparer == nil {
		comparer = ConstantTimeComparer{}
	}
	if institutionalDomain == "" {
		institutionalDomain = domain.InstitutionalDomain
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentityService{
		directory:           directory,
		comparer:            comparer,
		institutionalDomain: institutionalDomain,
		logger:              logger,
	}
}

func (s *IdentityService) Canonicalize(identifier string) string {
	return domain.NormalizeIdentifier(identifier, s.institutionalDomain)
}

func (s *IdentityService) Resolve(ctx context.Context, identifier string) domain.Resolution {
	canonical := s.Canonicalize(identifier)
	snapshot := s.directory.FetchAll(ctx)

	student, ok := snapshot.Find(canonical)
	if !ok {
		s.logger.DebugContext(ctx, "identity: no directory match",
			slog.Int("directory_size", len(snapshot)),
		)
		return domain.Resolution{}
	}
	return domain.Resolution{Found: true, Student: student}
}

func (s *IdentityService) Lookup(ctx context.Context, identifier string) (domain.Student, bool) {
	res := s.Resolve(ctx, identifier)
	return res.Student, res.Found
}

// Verify returns the resolved student when the comparer accepts secret
// against the stored one.
func (s *IdentityService) Verify(ctx context.Context, identifier, secret string) (domain.Student, bool) {
	res := s.Resolve(ctx, identifier)
	if !res.Found {
		return domain.Student{}, false
	}
	if !s.comparer.Matches(res.Student.Password, secret) {
		s.logger.InfoContext(ctx, "identity: credential mismatch")
		return domain.Student{}, false
	}
	return res.Student, true
}
