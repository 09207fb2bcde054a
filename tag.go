package main

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
)

type tag string

func (t tag) String() string { return string(t) }

func (t tag) Id() string { return strings.ReplaceAll(t.String(), " ", "_") }

func (t tag) sitePath() string { return "tags/" + t.Id() + ".html" }

type tagWithArticles struct {
	Tag      tag
	Articles articles
}

// Articles grouped by tag. Create using groupByTag, which orders groups by
// number of articles, then by newest article.
type articlesByTag []tagWithArticles

func (at *articlesByTag) addArticle(t tag, a *article) {
	for i, group := range *at {
		if group.Tag == t {
			group.Articles = append(group.Articles, a)
			(*at)[i] = group
			return
		}
	}

	*at = append(*at, tagWithArticles{t, articles{a}})
}

func (at articlesByTag) String() string {
	b := new(bytes.Buffer)
	for _, g := range at {
		b.WriteString(g.Tag.String())
		b.WriteString(": ")
		for i, a := range g.Articles {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.Title)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// groupByTag expects as to be sorted already; each group keeps that order.
func groupByTag(as articles) articlesByTag {
	byTag := make(articlesByTag, 0, 20)

	for _, a := range as {
		for _, t := range a.Tags {
			byTag.addArticle(t, a)
		}
	}

	slices.SortStableFunc(byTag, func(a, b tagWithArticles) int {
		// More articles first
		if c := cmp.Compare(len(b.Articles), len(a.Articles)); c != 0 {
			return c
		}
		if c := b.Articles.latestDate().Compare(a.Articles.latestDate()); c != 0 {
			return c
		}
		return cmp.Compare(a.Tag, b.Tag)
	})

	return byTag
}
