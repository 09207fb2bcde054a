package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHighlightCodeBlocks_NoCodeIsUnchanged(t *testing.T) {
	hl := newHighlighter("github")
	in := "<p>No code here, only <code>inline</code> text.</p>"

	out, err := hl.highlightCodeBlocks(in)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestHighlightCodeBlocks_ReplacesTaggedBlocks(t *testing.T) {
	hl := newHighlighter("github")
	in := "<p>Before</p>\n<pre><code class=\"language-go\">func main() {\n\tfmt.Println(&quot;a &lt; b&quot;)\n}\n</code></pre>\n<p>After</p>"

	out, err := hl.highlightCodeBlocks(in)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "<p>Before</p>\n<pre><code class=\"language-go\""), out)
	require.True(t, strings.HasSuffix(out, "</code></pre>\n<p>After</p>"), out)
	require.Contains(t, out, `<span class="line">`)
	require.Contains(t, out, "func")
	require.Contains(t, out, "&lt;")
	require.NotContains(t, out, "&amp;")
	require.Equal(t, 1, strings.Count(out, "<pre>"))
}

func TestHighlightCodeBlocks_MultipleBlocksAndUnknownLanguage(t *testing.T) {
	hl := newHighlighter("github")
	in := `<code class="language-nosuchlang">plain words</code> and <code class="language-python">print(1)</code>`

	out, err := hl.highlightCodeBlocks(in)
	require.NoError(t, err)
	require.Contains(t, out, `<code class="language-nosuchlang"`)
	require.Contains(t, out, "plain words")
	require.Contains(t, out, `<code class="language-python"`)
	require.Contains(t, out, "print")
	require.Contains(t, out, " and ")
}

func TestHighlightCodeBlocks_Notations(t *testing.T) {
	hl := newHighlighter("github")
	in := "<pre><code class=\"language-go\">a := 1 // [!code ++]\nb := 2 // [!code --]\nc := 3\n</code></pre>"

	out, err := hl.highlightCodeBlocks(in)
	require.NoError(t, err)
	require.Contains(t, out, `<code class="language-go has-diff"`)
	require.Contains(t, out, `<span class="line diff add">`)
	require.Contains(t, out, `<span class="line diff remove">`)
	require.NotContains(t, out, "[!code")
}

func TestStripNotations(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		wantCode  string
		wantClass map[int]string
	}{
		{
			name:      "no markers",
			code:      "x := 1\n",
			wantCode:  "x := 1\n",
			wantClass: map[int]string{},
		},
		{
			name:      "line comment marker",
			code:      "x-- // [!code focus]\ny++",
			wantCode:  "x--\ny++",
			wantClass: map[int]string{0: "focused"},
		},
		{
			name:      "hash comment alone on a line",
			code:      "ok()\n# [!code error]",
			wantCode:  "ok()\n",
			wantClass: map[int]string{1: "highlighted error"},
		},
		{
			name:      "comment text is kept",
			code:      "keep() // note [!code warning]",
			wantCode:  "keep() // note",
			wantClass: map[int]string{0: "highlighted warning"},
		},
		{
			name:      "html comment",
			code:      "<b>x</b> <!-- [!code ++] -->",
			wantCode:  "<b>x</b>",
			wantClass: map[int]string{0: "diff add"},
		},
		{
			name:      "block comment",
			code:      "int x; /* [!code --] */",
			wantCode:  "int x;",
			wantClass: map[int]string{0: "diff remove"},
		},
		{
			name:      "range covers following lines",
			code:      "a() // [!code ++:3]\nb()\nc()\nd()",
			wantCode:  "a()\nb()\nc()\nd()",
			wantClass: map[int]string{0: "diff add", 1: "diff add", 2: "diff add"},
		},
		{
			name:      "range stops at last line",
			code:      "a() // [!code focus:5]\nb()",
			wantCode:  "a()\nb()",
			wantClass: map[int]string{0: "focused", 1: "focused"},
		},
		{
			name:      "later marker overrides range",
			code:      "a() // [!code ++:2]\nb() // [!code --]",
			wantCode:  "a()\nb()",
			wantClass: map[int]string{0: "diff add", 1: "diff remove"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, classes := stripNotations(tc.code)
			require.Equal(t, tc.wantCode, code)
			require.Equal(t, tc.wantClass, classes)
		})
	}
}

func TestHighlight_FocusMarksBlock(t *testing.T) {
	hl := newHighlighter("github")

	out, err := hl.highlight("a()\nb() // [!code focus]\n", "go")
	require.NoError(t, err)
	require.Contains(t, out, `class="language-go has-focused"`)
	require.Contains(t, out, `<span class="line focused">`)
}
