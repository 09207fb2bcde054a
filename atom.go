package main

import (
	"fmt"
	"log/slog"
	"time"

	atom "github.com/thomas11/atomgenerator"
)

const feedPath = "index.xml"

func (s *Site) renderFeed(now time.Time) ([]byte, error) {
	feed := atom.Feed{
		Title:   s.conf.SiteTitle,
		Link:    s.conf.BaseUrl,
		PubDate: now,
	}
	author := atom.Author{Name: s.conf.Author, Uri: s.conf.AuthorUri}
	if author.Name == "" {
		author.Name = s.conf.SiteTitle
	}
	if author.Uri == "" {
		author.Uri = s.conf.BaseUrl
	}
	feed.AddAuthor(author)

	n := 0
	for _, a := range s.index.Articles {
		if !a.dated() {
			continue
		}
		if n == s.conf.MaxFeedEntries {
			break
		}
		feed.AddEntry(s.entryForArticle(a))
		n++
	}

	errs := feed.Validate()
	if len(errs) > 0 {
		for _, e := range errs {
			slog.Error("Atom feed is not valid", "error", e)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, errs[0])
	}

	return feed.GenXml()
}

func (s *Site) entryForArticle(a *article) *atom.Entry {
	e := &atom.Entry{
		Title:       a.Title,
		Description: a.Description,
		Link:        s.conf.url(a.OutPath),
		PubDate:     a.Published,
		Content:     a.Content,
	}
	if e.Description == "" {
		e.Description = a.Title
	}

	for _, t := range a.Tags {
		e.AddCategory(atom.Category{Term: t.String()})
	}

	return e
}
