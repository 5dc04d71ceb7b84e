package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverterToMarkdown(t *testing.T) {
	t.Parallel()

	c := NewConverter()

	tests := []struct {
		name     string
		html     string
		contains []string
		excludes []string
	}{
		{
			name:     "inline emphasis",
			html:     `<p>Paris is the <strong>capital</strong> of France.</p>`,
			contains: []string{"Paris is the **capital** of France."},
		},
		{
			name:     "scripts and buttons dropped",
			html:     `<div><p>Answer</p><script>alert(1)</script><button onclick="x()">Copy</button></div>`,
			contains: []string{"Answer"},
			excludes: []string{"alert", "onclick"},
		},
		{
			name:     "links kept",
			html:     `<p>See <a href="https://example.com/a">source</a></p>`,
			contains: []string{"[source](https://example.com/a)"},
		},
		{
			name:     "list items",
			html:     `<ul><li>one</li><li>two</li></ul>`,
			contains: []string{"- one", "- two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md, err := c.ToMarkdown(tt.html)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, md, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, md, unwanted)
			}
		})
	}
}

func TestConverterEmptyInput(t *testing.T) {
	t.Parallel()

	md, err := NewConverter().ToMarkdown("  \n ")
	require.NoError(t, err)
	assert.Empty(t, md)
}
