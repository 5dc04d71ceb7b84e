package ports

import (
	"context"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

type SessionStore interface {
	Save(ctx context.Context, platform domain.PlatformID, state domain.SessionState) error
	// Load never surfaces decode failures; a missing, corrupt, or stale record is reported as absent.
	Load(ctx context.Context, platform domain.PlatformID) (domain.SessionRecord, bool)
	Delete(ctx context.Context, platform domain.PlatformID) error
}
