package platforms

import (
	"regexp"
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

// perplexity answers anonymously, cites inline with bracketed numbers and keeps its submit
// arrow disabled until a keystroke lands in the box.
type perplexity struct {
	*site
}

func newPerplexity(profile domain.PlatformProfile, page ports.Page, deps Deps) ports.PlatformAdapter {
	return &perplexity{site: newSite(profile, page, deps, traits{
		pollInterval:    time.Second,
		threshold:       8,
		toggleHops:      4,
		submitWithEnter: true,
		anonymousInput:  true,
		sessionCookie:   "__Secure-next-auth.session-token",
		chromeLines:     chromePatterns(`^Sources$`, `^Related$`, `^Answer$`, `^Share$`, `^Rewrite$`),
		markers:         regexp.MustCompile(`\[\d+\]`),
	})}
}
