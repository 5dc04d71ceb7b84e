package platforms

import (
	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

// generic drives any site whose profile supplies every selector; it applies no site cleanup.
type generic struct {
	*site
}

func newGeneric(profile domain.PlatformProfile, page ports.Page, deps Deps) ports.PlatformAdapter {
	return &generic{site: newSite(profile, page, deps, traits{})}
}
