package main

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type siteParam struct {
	SiteTitle string
	BaseURL   string
	Author    string
	// Empty when no feed is generated.
	FeedURL   string
	BuildDate string
}

type tagLink struct {
	Name, URL string
}

type templateParam struct {
	Title         string
	DatePublished string
	DateUpdated   string
	Tags          []tagLink
	Content       template.HTML
	Nav           template.HTML
	// Slash-separated output path of this page, e.g. "game-rankings/ZeldaRankings.html".
	Path string
	Site siteParam
}

func (t templateParam) PathIs(p string) bool {
	return t.Path == strings.TrimPrefix(p, "/")
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// templateEngine renders pages through the one shared page template. It is
// safe for concurrent use once created.
type templateEngine struct {
	tmpl *template.Template
	site siteParam
	nav  template.HTML
	conf *SiteConf
}

func newTemplateEngine(conf *SiteConf, site siteParam, nav string) (*templateEngine, error) {
	text, err := os.ReadFile(conf.Template)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoTemplate, conf.Template)
	}
	if err != nil {
		return nil, err
	}

	t, err := template.New(filepath.Base(conf.Template)).Funcs(templateFuncs).Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", conf.Template, err)
	}

	return &templateEngine{
		tmpl: t,
		site: site,
		nav:  template.HTML(nav),
		conf: conf,
	}, nil
}

func (te *templateEngine) params(p *page) templateParam {
	tp := templateParam{
		Title:         p.Title,
		DatePublished: p.DatePublished,
		DateUpdated:   p.DateUpdated,
		Tags:          make([]tagLink, 0, len(p.Tags)),
		Content:       template.HTML(p.Content),
		Nav:           te.nav,
		Path:          p.OutPath,
		Site:          te.site,
	}
	for _, t := range p.Tags {
		tp.Tags = append(tp.Tags, tagLink{Name: t.String(), URL: te.conf.url(t.sitePath())})
	}
	return tp
}

func (te *templateEngine) renderPage(p *page, w io.Writer) error {
	if err := te.tmpl.Execute(w, te.params(p)); err != nil {
		return fmt.Errorf("rendering %s: %w", p.OutPath, err)
	}
	return nil
}
