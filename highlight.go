package main

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var codeBlockPattern = regexp.MustCompile(`<code class="language-(\w+)">([\s\S]*?)</code>`)

// A trailing "[!code ...]" marker, with a comment opener directly before it.
// An optional ":N" suffix extends the marker over N lines.
var notationPattern = regexp.MustCompile(`(?:\s*(?://|#|--|<!--|/\*))?\s*\[!code (\+\+|--|focus|error|warning)(?::(\d+))?\]\s*(?:-->|\*/)?\s*$`)

var notationClasses = map[string]string{
	"++":      "diff add",
	"--":      "diff remove",
	"focus":   "focused",
	"error":   "highlighted error",
	"warning": "highlighted warning",
}

type highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func newHighlighter(styleName string) *highlighter {
	return &highlighter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.WithClasses(false),
		),
	}
}

// highlightCodeBlocks replaces every language-tagged <code> element in content
// with its highlighted rendition.
func (h *highlighter) highlightCodeBlocks(content string) (string, error) {
	matches := codeBlockPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	var b strings.Builder
	b.Grow(len(content) * 2)
	last := 0
	for _, m := range matches {
		lang := content[m[2]:m[3]]
		code := content[m[4]:m[5]]
		highlighted, err := h.highlight(html.UnescapeString(code), lang)
		if err != nil {
			return "", fmt.Errorf("highlighting %s block: %w", lang, err)
		}
		b.WriteString(content[last:m[0]])
		b.WriteString(highlighted)
		last = m[1]
	}
	b.WriteString(content[last:])
	return b.String(), nil
}

func (h *highlighter) highlight(code, lang string) (string, error) {
	code, lineClasses := stripNotations(code)

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var focused, diff bool
	for _, c := range lineClasses {
		focused = focused || c == "focused"
		diff = diff || strings.HasPrefix(c, "diff")
	}

	var b strings.Builder
	b.WriteString(`<code class="language-` + lang)
	if focused {
		b.WriteString(" has-focused")
	}
	if diff {
		b.WriteString(" has-diff")
	}
	b.WriteString(`"`)
	if bg := h.style.Get(chroma.Background); bg.Colour.IsSet() || bg.Background.IsSet() {
		b.WriteString(` style="`)
		if bg.Colour.IsSet() {
			b.WriteString("color:" + bg.Colour.String() + ";")
		}
		if bg.Background.IsSet() {
			b.WriteString("background-color:" + bg.Background.String() + ";")
		}
		b.WriteString(`"`)
	}
	b.WriteString(">")

	for i, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
		class := "line"
		if c, ok := lineClasses[i]; ok {
			class += " " + c
		}
		b.WriteString(`<span class="` + class + `">`)
		if err := h.formatter.Format(&b, h.style, chroma.Literator(line...)); err != nil {
			return "", err
		}
		b.WriteString("</span>")
	}
	b.WriteString("</code>")
	return b.String(), nil
}

// stripNotations removes "[!code ...]" markers and reports the class of each
// marked line by zero-based index. A marker on a later line wins over a range
// reaching it.
func stripNotations(code string) (string, map[int]string) {
	classes := make(map[int]string)
	if !strings.Contains(code, "[!code ") {
		return code, classes
	}

	lines := strings.Split(code, "\n")
	for i, line := range lines {
		m := notationPattern.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		class := notationClasses[line[m[2]:m[3]]]
		n := 1
		if m[4] >= 0 {
			if v, err := strconv.Atoi(line[m[4]:m[5]]); err == nil && v > 1 {
				n = v
			}
		}
		for j := i; j < i+n && j < len(lines); j++ {
			classes[j] = class
		}
		lines[i] = line[:m[0]]
	}
	return strings.Join(lines, "\n"), classes
}
