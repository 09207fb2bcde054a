package main

import (
	"github.com/russross/blackfriday/v2"
)

const htmlFlags = blackfriday.UseXHTML |
	blackfriday.Smartypants |
	blackfriday.SmartypantsFractions |
	blackfriday.SmartypantsLatexDashes

const extensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough

type renderer interface {
	render(in []byte) string
}

func newMarkdownRenderer() renderer {
	return &blackfridayHtmlRenderer{
		params:     blackfriday.HTMLRendererParameters{Flags: htmlFlags},
		extensions: extensions,
	}
}

type blackfridayHtmlRenderer struct {
	params     blackfriday.HTMLRendererParameters
	extensions blackfriday.Extensions
}

// The HTML renderer keeps per-document state, so each call gets its own.
func (b *blackfridayHtmlRenderer) render(in []byte) string {
	r := blackfriday.NewHTMLRenderer(b.params)
	return string(blackfriday.Run(in, blackfriday.WithRenderer(r), blackfriday.WithExtensions(b.extensions)))
}
