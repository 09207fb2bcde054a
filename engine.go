// Command notesite is a static site generator for a personal notes site:
// HTML and Markdown articles with a metadata comment, game rankings and
// quotes kept as plain-text notes, and image albums.
//
// Everything is rendered through one shared html/template page template and
// written to an output directory that is emptied on every run. Point it at a
// notesite.yaml to get started, see example/.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// assetsPath is where the assets directory is copied to.
const assetsPath = "assets"

type Site struct {
	conf    *SiteConf
	index   *siteIndex
	// Site paths of the copied asset files.
	assets  []string
	workers int
}

func (s *Site) workerLimit() int {
	if s.workers > 0 {
		return s.workers
	}
	return runtime.GOMAXPROCS(0)
}

// ReadSite discovers and parses all content. Files are read in parallel.
func ReadSite(ctx context.Context, conf *SiteConf) (*Site, error) {
	site := &Site{conf: conf, workers: conf.Workers}

	articleFiles, err := findArticleFiles(conf.PagesDir)
	if err != nil {
		return nil, fmt.Errorf("finding articles in %s: %w", conf.PagesDir, err)
	}
	rankingFiles, err := findRankingFiles(conf.NotesDir)
	if err != nil {
		return nil, fmt.Errorf("finding rankings in %s: %w", conf.NotesDir, err)
	}
	albumSources, err := findAlbums(conf.ImagesDir)
	if err != nil {
		return nil, fmt.Errorf("finding albums in %s: %w", conf.ImagesDir, err)
	}
	assetFiles, err := findAssetFiles(conf.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("finding assets in %s: %w", conf.AssetsDir, err)
	}
	for _, f := range assetFiles {
		site.assets = append(site.assets, assetsPath+"/"+f)
	}

	md := newMarkdownRenderer()
	hl := newHighlighter("github")

	arts := make(articles, len(articleFiles))
	rankings := make([]*page, len(rankingFiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(site.workerLimit())
	for i, f := range articleFiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := readArticleFromFile(f, conf.PagesDir, md, hl)
			if err != nil {
				return fmt.Errorf("reading article %s: %w", f, err)
			}
			slog.Debug("Read article", "path", f, "article", a)
			arts[i] = a
			return nil
		})
	}
	for i, f := range rankingFiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := readRankingFromFile(f)
			if err != nil {
				return fmt.Errorf("reading ranking %s: %w", f, err)
			}
			rankings[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	quotes, err := readQuotesFromFile(conf.QuotesFile)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("No quotes file, skipping quotes page", "path", conf.QuotesFile)
		quotes = nil
	} else if err != nil {
		return nil, fmt.Errorf("reading quotes %s: %w", conf.QuotesFile, err)
	}

	albums := make([]*album, 0, len(albumSources))
	for _, src := range albumSources {
		albums = append(albums, newAlbum(src))
	}

	site.index = newSiteIndex(arts, rankings, quotes, albums)
	slog.Info("Read site",
		"articles", len(site.index.Articles),
		"tags", len(site.index.ByTag),
		"rankings", len(site.index.Rankings),
		"albums", len(site.index.Albums))

	return site, nil
}

// pages lists every page of the site in a stable order. Two outputs sharing a
// path fail with ErrPathClash.
func (s *Site) pages() ([]*page, error) {
	var all []*page
	for _, a := range s.index.Articles {
		all = append(all, a.page())
	}
	all = append(all, s.index.Rankings...)
	if s.index.Quotes != nil {
		all = append(all, s.index.Quotes)
	}
	for _, a := range s.index.Albums {
		all = append(all, a.page(s.conf))
	}
	all = append(all, s.index.indexPages(s.conf)...)

	seen := make(map[string]string, len(all)+len(s.assets))
	for _, a := range s.assets {
		seen[a] = "asset " + a
	}
	for _, a := range s.index.Albums {
		for src, dest := range a.imageCopies() {
			seen[dest] = "image " + src
		}
	}
	if s.conf.feedEnabled() {
		seen[feedPath] = "Atom feed"
	}
	for _, p := range all {
		if other, ok := seen[p.OutPath]; ok {
			return nil, fmt.Errorf("%w: %s (%q and %q)", ErrPathClash, p.OutPath, other, p.Title)
		}
		seen[p.OutPath] = p.Title
	}
	return all, nil
}

func (s *Site) siteParam(now time.Time) siteParam {
	sp := siteParam{
		SiteTitle: s.conf.SiteTitle,
		BaseURL:   s.conf.BaseUrl,
		Author:    s.conf.Author,
		BuildDate: formatDateStamp(now),
	}
	if s.conf.feedEnabled() {
		sp.FeedURL = s.conf.url(feedPath)
	}
	return sp
}

// RenderAll empties the output directory and writes the whole site to it.
// Everything that can fail without touching the disk is checked first.
func (s *Site) RenderAll(ctx context.Context) error {
	now := time.Now()

	if err := s.conf.checkOutDir(); err != nil {
		return err
	}

	pages, err := s.pages()
	if err != nil {
		return err
	}

	engine, err := newTemplateEngine(s.conf, s.siteParam(now), s.index.navFragment(s.conf))
	if err != nil {
		return err
	}

	var feed []byte
	if s.conf.feedEnabled() {
		if feed, err = s.renderFeed(now); err != nil {
			return err
		}
	} else {
		slog.Debug("Base URL is not absolute, skipping Atom feed", "baseUrl", s.conf.BaseUrl)
	}

	out, err := emptyOutputDir(s.conf.OutDir)
	if err != nil {
		return fmt.Errorf("emptying %s: %w", s.conf.OutDir, err)
	}
	slog.Info("Writing site", "path", s.conf.OutDir, "pages", len(pages))

	if err := out.copyDir(s.conf.AssetsDir, assetsPath); err != nil {
		return fmt.Errorf("copying assets: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit())
	for _, p := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var b bytes.Buffer
			if err := engine.renderPage(p, &b); err != nil {
				return err
			}
			slog.Debug("Writing page", "path", p.OutPath)
			return out.writeFile(p.OutPath, b.Bytes())
		})
	}
	for _, a := range s.index.Albums {
		for src, dest := range a.imageCopies() {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return out.copyFile(src, dest)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if feed == nil {
		return nil
	}
	return out.writeFile(feedPath, feed)
}

// Build reads the configured content and renders the site.
func Build(ctx context.Context, conf *SiteConf) error {
	site, err := ReadSite(ctx, conf)
	if err != nil {
		return err
	}
	return site.RenderAll(ctx)
}
