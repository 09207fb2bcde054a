package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

type SiteConf struct {
	SiteTitle string `yaml:"siteTitle"`
	Author    string `yaml:"author"`
	AuthorUri string `yaml:"authorUri"`
	// Prefix for every generated link. Absolute URLs also enable the feed.
	BaseUrl string `yaml:"baseUrl"`

	Template string `yaml:"template"`

	PagesDir   string `yaml:"pagesDir"`
	NotesDir   string `yaml:"notesDir"`
	QuotesFile string `yaml:"quotesFile"`
	ImagesDir  string `yaml:"imagesDir"`
	AssetsDir  string `yaml:"assetsDir"`

	OutDir    string `yaml:"outDir"`
	IndexPage string `yaml:"indexPage"`

	MaxFeedEntries int `yaml:"maxFeedEntries"`
	Workers        int `yaml:"workers"`
}

// readConf loads the configuration at fileName. When mustExist is false a
// missing file yields the defaults, resolved against the file's directory.
func readConf(fileName string, mustExist bool) (*SiteConf, error) {
	conf := SiteConf{}

	rawConf, err := os.ReadFile(fileName)
	switch {
	case err == nil:
		if len(strings.TrimSpace(string(rawConf))) > 0 {
			if err := yaml.UnmarshalWithOptions(rawConf, &conf, yaml.Strict()); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrConfig, fileName, err)
			}
		}
	case errors.Is(err, fs.ErrNotExist) && !mustExist:
		slog.Debug("No configuration file, using defaults", "path", fileName)
	default:
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	conf.applyDefaults()

	// Normalize relative paths because the executable can be called from anywhere
	baseDir := filepath.Dir(fileName)
	conf.Template = normalizePath(conf.Template, baseDir)
	conf.PagesDir = normalizePath(conf.PagesDir, baseDir)
	conf.NotesDir = normalizePath(conf.NotesDir, baseDir)
	if conf.QuotesFile == "" {
		conf.QuotesFile = filepath.Join(conf.NotesDir, "Quotes.txt")
	}
	conf.QuotesFile = normalizePath(conf.QuotesFile, baseDir)
	conf.ImagesDir = normalizePath(conf.ImagesDir, baseDir)
	conf.AssetsDir = normalizePath(conf.AssetsDir, baseDir)
	conf.OutDir = normalizePath(conf.OutDir, baseDir)

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *SiteConf) applyDefaults() {
	if len(c.SiteTitle) == 0 {
		c.SiteTitle = "Notes"
	}
	if len(c.Template) == 0 {
		c.Template = "template.html"
	}
	if len(c.PagesDir) == 0 {
		c.PagesDir = "pages"
	}
	if len(c.NotesDir) == 0 {
		c.NotesDir = "notes"
	}
	if len(c.ImagesDir) == 0 {
		c.ImagesDir = "images"
	}
	if len(c.AssetsDir) == 0 {
		c.AssetsDir = "assets"
	}
	if len(c.OutDir) == 0 {
		c.OutDir = "output"
	}
	if len(c.IndexPage) == 0 {
		c.IndexPage = "articles.html"
	}
	if len(c.BaseUrl) == 0 {
		c.BaseUrl = "/"
	}
	if !strings.HasSuffix(c.BaseUrl, "/") {
		c.BaseUrl += "/"
	}
	if c.MaxFeedEntries <= 0 {
		c.MaxFeedEntries = 20
	}
}

func (c *SiteConf) validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrConfig, c.Workers)
	}
	if filepath.IsAbs(c.IndexPage) || strings.Contains(filepath.ToSlash(c.IndexPage), "..") {
		return fmt.Errorf("%w: indexPage %q must be a plain relative path", ErrConfig, c.IndexPage)
	}
	return nil
}

// checkOutDir refuses an output directory that is, or holds, one of the
// source paths, since building empties it.
func (c *SiteConf) checkOutDir() error {
	out, err := filepath.Abs(c.OutDir)
	if err != nil {
		return fmt.Errorf("%w: outDir %q: %v", ErrConfig, c.OutDir, err)
	}
	sources := map[string]string{
		"template":   c.Template,
		"pagesDir":   c.PagesDir,
		"notesDir":   c.NotesDir,
		"quotesFile": c.QuotesFile,
		"imagesDir":  c.ImagesDir,
		"assetsDir":  c.AssetsDir,
	}
	for _, name := range slices.Sorted(maps.Keys(sources)) {
		if sources[name] == "" {
			continue
		}
		src, err := filepath.Abs(sources[name])
		if err != nil {
			continue
		}
		if rel, err := filepath.Rel(out, src); err == nil && (rel == "." || filepath.IsLocal(rel)) {
			return fmt.Errorf("%w: outDir %s would delete %s %s", ErrConfig, c.OutDir, name, sources[name])
		}
	}
	return nil
}

// feedEnabled reports whether links can be made absolute, which Atom needs.
func (c *SiteConf) feedEnabled() bool {
	return strings.HasPrefix(c.BaseUrl, "http://") || strings.HasPrefix(c.BaseUrl, "https://")
}

// url joins a slash-separated site path onto the base URL, percent-encoding
// each segment.
func (c *SiteConf) url(sitePath string) string {
	segments := strings.Split(strings.TrimPrefix(sitePath, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return c.BaseUrl + strings.Join(segments, "/")
}

func normalizePath(path, baseDir string) string {
	if !filepath.IsAbs(path) {
		absPath := filepath.Join(baseDir, path)
		slog.Debug("Normalizing path", "path", path, "resolved", absPath)
		return absPath
	}
	return path
}
