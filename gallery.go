package main

import (
	"html/template"
	"path/filepath"
	"strings"
	"time"
)

type album struct {
	Name string
	Dir  string
	// Image file names inside Dir.
	Images []string
	// Newest image modification time.
	Updated time.Time
}

func newAlbum(src albumSource) *album {
	a := &album{Name: src.Name, Dir: src.Dir}
	for _, info := range src.Images {
		a.Images = append(a.Images, info.Name())
		if info.ModTime().After(a.Updated) {
			a.Updated = info.ModTime()
		}
	}
	return a
}

func (a *album) Id() string { return strings.ReplaceAll(a.Name, " ", "_") }

func (a *album) sitePath() string { return "galleries/" + a.Id() + ".html" }

// imageDir is the slash-separated output directory of the album's images.
func (a *album) imageDir() string { return "galleries/" + a.Id() }

func caption(fileName string) string {
	return titleFromName(stemOf(fileName))
}

// formatGallery renders the album as a grid of linked thumbnails.
func formatGallery(a *album, conf *SiteConf) string {
	b := new(strings.Builder)
	b.WriteString(`<div class="gallery">`)
	for _, img := range a.Images {
		src := template.HTMLEscapeString(conf.url(a.imageDir() + "/" + img))
		c := template.HTMLEscapeString(caption(img))
		b.WriteString("\n<figure><a href=\"" + src + "\"><img src=\"" + src + "\" alt=\"" + c +
			"\" loading=\"lazy\"></a><figcaption>" + c + "</figcaption></figure>")
	}
	b.WriteString("\n</div>")
	return b.String()
}

func (a *album) page(conf *SiteConf) *page {
	return &page{
		Title:       a.Name,
		DateUpdated: formatDateStamp(a.Updated),
		Content:     formatGallery(a, conf),
		OutPath:     a.sitePath(),
	}
}

// imageCopies maps each source image to its site path.
func (a *album) imageCopies() map[string]string {
	copies := make(map[string]string, len(a.Images))
	for _, img := range a.Images {
		copies[filepath.Join(a.Dir, img)] = a.imageDir() + "/" + img
	}
	return copies
}
