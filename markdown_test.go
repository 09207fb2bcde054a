package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkdownRenderer(t *testing.T) {
	r := newMarkdownRenderer()

	tests := []struct {
		name         string
		input        string
		wantContains []string
	}{
		{
			name:         "heading and emphasis",
			input:        "# Title\n\nSome **bold** text.",
			wantContains: []string{"Title</h1>", "<strong>bold</strong>"},
		},
		{
			name:         "fenced code keeps the language class",
			input:        "```python\nprint(1)\n```\n",
			wantContains: []string{`<pre><code class="language-python">`, "print(1)"},
		},
		{
			name:         "tables",
			input:        "| A | B |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "strikethrough",
			input:        "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := r.render([]byte(tc.input))
			for _, want := range tc.wantContains {
				require.Contains(t, out, want)
			}
		})
	}
}
