// Package markup turns captured answer markup into sanitized markdown.
package markup

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"

	"github.com/bnema/aiprobe-cli/internal/ports"
)

type Converter struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

var _ ports.MarkupConverter = (*Converter)(nil)

func NewConverter() *Converter {
	// UGC keeps headings, lists, tables, code and links; it drops buttons, svg icons and inline handlers.
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")

	return &Converter{
		policy: policy,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

func (c *Converter) ToMarkdown(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	clean := c.policy.Sanitize(html)
	md, err := c.conv.ConvertString(clean)
	if err != nil {
		return "", fmt.Errorf("convert answer markup: %w", err)
	}
	return strings.TrimSpace(md), nil
}
