package ports

import (
	"context"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/domain"
)

type IdentityService interface {
	Resolve(ctx context.Context, identifier string) domain.Resolution
	Lookup(ctx context.Context, identifier string) (domain.Student, bool)
	Verify(ctx context.Context, identifier, secret string) (domain.Student, bool)
	Canonicalize(identifier string) string
}
