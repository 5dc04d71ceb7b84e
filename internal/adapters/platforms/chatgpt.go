package platforms

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

type chatGPT struct {
	*site
}

func newChatGPT(profile domain.PlatformProfile, page ports.Page, deps Deps) ports.PlatformAdapter {
	return &chatGPT{site: newSite(profile, page, deps, traits{
		pollInterval:   time.Second,
		threshold:      5,
		anonymousInput: true,
		sessionCookie:  "__Secure-next-auth.session-token",
		chromeLines:    chromePatterns(`^ChatGPT said:$`, `^You said:$`, `^Searched \d+ sites?$`, `^Sources$`),
		markers:        regexp.MustCompile(`【\d+(?::\d+)?†[^】]*】`),
	})}
}

const modelSlugScript = `() => {
	const nodes = document.querySelectorAll('[data-message-model-slug]');
	if (!nodes.length) return '';
	return nodes[nodes.length - 1].getAttribute('data-message-model-slug') || '';
}`

// ExtractResponse also records the model slug the page stamps on the newest answer.
func (c *chatGPT) ExtractResponse(ctx context.Context) domain.ExtractionResult {
	res := c.site.ExtractResponse(ctx)

	v, err := c.page.Evaluate(ctx, modelSlugScript, nil)
	if err != nil {
		c.logger.DebugContext(ctx, "read model slug", "error", err)
		return res
	}
	if slug, ok := v.(string); ok && strings.TrimSpace(slug) != "" {
		res.Model = strings.TrimSpace(slug)
	}
	return res
}
