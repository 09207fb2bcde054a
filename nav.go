package main

import (
	"cmp"
	"html/template"
	"slices"
	"strconv"
	"strings"
)

// siteIndex holds every record the index pages and navigation derive from.
type siteIndex struct {
	Articles articles
	ByTag    articlesByTag
	Rankings []*page
	Quotes   *page
	Albums   []*album
}

func newSiteIndex(as articles, rankings []*page, quotes *page, albums []*album) *siteIndex {
	as.sortByDate()
	slices.SortStableFunc(rankings, func(a, b *page) int {
		if c := cmp.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.OutPath, b.OutPath)
	})
	return &siteIndex{
		Articles: as,
		ByTag:    groupByTag(as),
		Rankings: rankings,
		Quotes:   quotes,
		Albums:   albums,
	}
}

func link(conf *SiteConf, sitePath, label string) string {
	return `<a href="` + template.HTMLEscapeString(conf.url(sitePath)) + `">` + template.HTMLEscapeString(label) + `</a>`
}

// navFragment is the sitewide navigation shared by every page.
func (idx *siteIndex) navFragment(conf *SiteConf) string {
	b := new(strings.Builder)
	b.WriteString("<nav class=\"site-nav\">\n<ul>\n")
	b.WriteString("<li>" + link(conf, conf.IndexPage, "Articles") + "</li>\n")
	if len(idx.ByTag) > 0 {
		b.WriteString("<li>" + link(conf, "tags.html", "Tags") + "</li>\n")
	}
	if len(idx.Rankings) > 0 {
		b.WriteString("<li>Game Rankings\n<ul>\n")
		for _, r := range idx.Rankings {
			b.WriteString("<li>" + link(conf, r.OutPath, r.label()) + "</li>\n")
		}
		b.WriteString("</ul>\n</li>\n")
	}
	if idx.Quotes != nil {
		b.WriteString("<li>" + link(conf, idx.Quotes.OutPath, idx.Quotes.label()) + "</li>\n")
	}
	if len(idx.Albums) > 0 {
		b.WriteString("<li>" + link(conf, "galleries.html", "Galleries") + "</li>\n")
	}
	b.WriteString("</ul>\n</nav>")
	return b.String()
}

func articleList(as articles, conf *SiteConf) string {
	b := new(strings.Builder)
	b.WriteString(`<ul class="article-index">`)
	for _, a := range as {
		b.WriteString("\n<li>" + link(conf, a.OutPath, a.Title))
		if a.DatePublished != "" {
			d := template.HTMLEscapeString(a.DatePublished)
			b.WriteString(` <time datetime="` + d + `">` + d + `</time>`)
		}
		b.WriteString("</li>")
	}
	b.WriteString("\n</ul>")
	return b.String()
}

func (idx *siteIndex) articleIndexPage(conf *SiteConf) *page {
	p := &page{
		Title:   "Articles",
		Content: articleList(idx.Articles, conf),
		OutPath: conf.IndexPage,
	}
	if latest := idx.Articles.latestDate(); !latest.IsZero() {
		p.DateUpdated = formatDateStamp(latest)
	}
	return p
}

func (idx *siteIndex) tagPages(conf *SiteConf) []*page {
	pages := make([]*page, 0, len(idx.ByTag))
	for _, g := range idx.ByTag {
		pages = append(pages, &page{
			Title:   g.Tag.String(),
			Content: articleList(g.Articles, conf),
			OutPath: g.Tag.sitePath(),
		})
	}
	return pages
}

func (idx *siteIndex) tagsOverviewPage(conf *SiteConf) *page {
	b := new(strings.Builder)
	b.WriteString(`<ul class="tag-index">`)
	for _, g := range idx.ByTag {
		b.WriteString("\n<li>" + link(conf, g.Tag.sitePath(), g.Tag.String()) +
			` <span class="count">(` + strconv.Itoa(len(g.Articles)) + `)</span></li>`)
	}
	b.WriteString("\n</ul>")
	return &page{Title: "Tags", Content: b.String(), OutPath: "tags.html"}
}

func (idx *siteIndex) galleriesIndexPage(conf *SiteConf) *page {
	b := new(strings.Builder)
	b.WriteString(`<ul class="gallery-index">`)
	for _, a := range idx.Albums {
		b.WriteString("\n<li>" + link(conf, a.sitePath(), a.Name) +
			` <span class="count">(` + strconv.Itoa(len(a.Images)) + `)</span></li>`)
	}
	b.WriteString("\n</ul>")
	return &page{Title: "Galleries", Content: b.String(), OutPath: "galleries.html"}
}

// indexPages lists every derived page; the tag and gallery overviews only
// exist when there is something to list.
func (idx *siteIndex) indexPages(conf *SiteConf) []*page {
	pages := []*page{idx.articleIndexPage(conf)}
	if len(idx.ByTag) > 0 {
		pages = append(pages, idx.tagsOverviewPage(conf))
		pages = append(pages, idx.tagPages(conf)...)
	}
	if len(idx.Albums) > 0 {
		pages = append(pages, idx.galleriesIndexPage(conf))
	}
	return pages
}
