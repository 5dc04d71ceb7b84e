package platforms

import (
	"regexp"
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

type kimi struct {
	*site
}

func newKimi(profile domain.PlatformProfile, page ports.Page, deps Deps) ports.PlatformAdapter {
	return &kimi{site: newSite(profile, page, deps, traits{
		pollInterval: 500 * time.Millisecond,
		threshold:    6,
		toggleHops:   4,
		chromeLines:  chromePatterns(`^搜索网页$`, `^已阅读 \d+ 个网页$`, `^复制$`, `^再试一次$`),
		markers:      regexp.MustCompile(`\[\^\d+\^\]`),
	})}
}
