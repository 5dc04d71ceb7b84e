package platforms

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

type deepSeek struct {
	*site
}

func newDeepSeek(profile domain.PlatformProfile, page ports.Page, deps Deps) ports.PlatformAdapter {
	return &deepSeek{site: newSite(profile, page, deps, traits{
		pollInterval: time.Second,
		threshold:    5,
		encodeToken:  versionedToken,
		chromeLines:  chromePatterns(`^Thought for \d+ seconds?$`, `^Found \d+ results?$`, `^Copy$`, `^Regenerate$`),
		markers:      regexp.MustCompile(`\[citation:\d+\]`),
	})}
}

// versionedToken wraps a token in the {"value": ..., "__version": "0"} envelope the site
// keeps in local storage.
func versionedToken(token string) string {
	raw, err := json.Marshal(struct {
		Value   string `json:"value"`
		Version string `json:"__version"`
	}{Value: token, Version: "0"})
	if err != nil {
		return token
	}
	return string(raw)
}
