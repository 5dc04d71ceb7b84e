package platforms

import (
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

type gemini struct {
	*site
}

func newGemini(profile domain.PlatformProfile, page ports.Page, deps Deps) ports.PlatformAdapter {
	return &gemini{site: newSite(profile, page, deps, traits{
		pollInterval:   time.Second,
		threshold:      6,
		anonymousInput: true,
		sessionCookie:  "__Secure-1PSID",
		chromeLines:    chromePatterns(`^Show drafts$`, `^Gemini can make mistakes`, `^Sources and related content$`),
	})}
}
