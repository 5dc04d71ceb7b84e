package ports

import (
	"context"
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

type PlatformAdapter interface {
	Platform() domain.PlatformID
	Navigate(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool
	HandleLogin(ctx context.Context) (domain.LoginState, error)
	SendQuery(ctx context.Context, text string) error
	WaitForResponse(ctx context.Context, timeout time.Duration) (domain.ExtractionResult, bool)
	ExtractResponse(ctx context.Context) domain.ExtractionResult
}

// AdapterFactory binds a platform profile to a freshly opened page.
type AdapterFactory interface {
	New(profile domain.PlatformProfile, page Page) (PlatformAdapter, error)
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id domain.PlatformID) (domain.PlatformProfile, error)
	List(ctx context.Context) ([]domain.PlatformProfile, error)
}
