package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testTemplate = `<title>{{.Title}}</title>
{{.Nav}}
<main>{{.Content}}</main>
<p class="meta">{{.DatePublished}}|{{.DateUpdated}}|{{range .Tags}}<a href="{{.URL}}">{{.Name}}</a>;{{end}}</p>
<p class="path">{{.Path}} {{if .PathIs "/quotes.html"}}active{{end}}</p>
<footer>{{.Site.SiteTitle}} {{.Site.FeedURL}}</footer>`

func writeTemplate(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, "template.html")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestTemplateEngine_RenderPage(t *testing.T) {
	conf := &SiteConf{BaseUrl: "/", Template: writeTemplate(t, t.TempDir(), testTemplate)}
	te, err := newTemplateEngine(conf, siteParam{SiteTitle: "Notes"}, `<nav>n</nav>`)
	require.NoError(t, err)

	p := &page{
		Title:         "Fish & Chips",
		DatePublished: "2024-10-08",
		Tags:          []tag{"food", "uk pubs"},
		Content:       "<p>raw <b>html</b></p>",
		OutPath:       "quotes.html",
	}
	var b bytes.Buffer
	require.NoError(t, te.renderPage(p, &b))

	out := b.String()
	require.Contains(t, out, "<title>Fish &amp; Chips</title>")
	require.Contains(t, out, "<nav>n</nav>")
	require.Contains(t, out, "<main><p>raw <b>html</b></p></main>")
	require.Contains(t, out, `2024-10-08||<a href="/tags/food.html">food</a>;<a href="/tags/uk_pubs.html">uk pubs</a>;`)
	require.Contains(t, out, "quotes.html active")
	require.Contains(t, out, "<footer>Notes </footer>")
}

func TestTemplateEngine_Join(t *testing.T) {
	conf := &SiteConf{BaseUrl: "/", Template: writeTemplate(t, t.TempDir(), `{{join .Names ", "}}`)}
	te, err := newTemplateEngine(conf, siteParam{}, "")
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, te.tmpl.Execute(&b, map[string][]string{"Names": {"a", "b"}}))
	require.Equal(t, "a, b", b.String())
}

func TestNewTemplateEngine_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := newTemplateEngine(&SiteConf{Template: filepath.Join(dir, "missing.html")}, siteParam{}, "")
	require.ErrorIs(t, err, ErrNoTemplate)

	_, err = newTemplateEngine(&SiteConf{Template: writeTemplate(t, dir, "{{.Title")}, siteParam{}, "")
	require.Error(t, err)
}

func TestTemplateEngine_ExecutionErrorNamesPage(t *testing.T) {
	conf := &SiteConf{Template: writeTemplate(t, t.TempDir(), "{{.Missing}}")}
	te, err := newTemplateEngine(conf, siteParam{}, "")
	require.NoError(t, err)

	err = te.renderPage(&page{OutPath: "broken.html"}, &bytes.Buffer{})
	require.ErrorContains(t, err, "broken.html")
}
