package platforms

import (
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

// doubao shows no stop control while streaming, so the threshold is widened by default.
type doubao struct {
	*site
}

func newDoubao(profile domain.PlatformProfile, page ports.Page, deps Deps) ports.PlatformAdapter {
	return &doubao{site: newSite(profile, page, deps, traits{
		pollInterval:  time.Second,
		threshold:     10,
		sessionCookie: "sessionid",
		chromeLines:   chromePatterns(`^内容由豆包 AI 生成`, `^参考 \d+ 篇资料$`),
	})}
}
