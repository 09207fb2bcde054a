package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// page is everything the shared template needs for one output file.
type page struct {
	Title         string
	DatePublished string
	DateUpdated   string
	Tags          []tag
	Content       string
	// Slash-separated path relative to the output root.
	OutPath string
	// Short name for navigation links, Title when empty.
	Label string
}

func (p *page) label() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Title
}

func (a *article) page() *page {
	return &page{
		Title:         a.Title,
		DatePublished: a.DatePublished,
		DateUpdated:   a.DateUpdated,
		Tags:          a.Tags,
		Content:       a.Content,
		OutPath:       a.OutPath,
	}
}

// nonEmptyLines returns the trimmed lines of text, dropping blank ones.
func nonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func wrapLines(lines []string, open, close, itemOpen, itemClose string) string {
	items := make([]string, len(lines))
	for i, l := range lines {
		items[i] = itemOpen + l + itemClose
	}
	return open + strings.Join(items, "\n") + close
}

func formatRanking(text string) string {
	return wrapLines(nonEmptyLines(text), "<ol>", "</ol>", "<li>", "</li>")
}

func formatQuotes(text string) string {
	return wrapLines(nonEmptyLines(text), "<div>", "</div>", "<p>", "</p>")
}

// rankingName turns "ZeldaRankings.txt" into "Zelda".
func rankingName(fileName string) string {
	return strings.Replace(strings.Replace(fileName, ".txt", "", 1), "Rankings", "", 1)
}

func modifiedDate(info fs.FileInfo) string {
	return formatDateStamp(info.ModTime())
}

func formatDateStamp(t time.Time) string {
	return t.UTC().Format(dateStampFormat)
}

func readRankingFromFile(path string) (*page, error) {
	text, info, err := readNote(path)
	if err != nil {
		return nil, err
	}
	name := info.Name()
	return &page{
		Title:       "My Ranking of the " + rankingName(name) + " Games",
		Label:       rankingName(name),
		DateUpdated: modifiedDate(info),
		Content:     formatRanking(text),
		OutPath:     "game-rankings/" + strings.Replace(name, ".txt", ".html", 1),
	}, nil
}

func readQuotesFromFile(path string) (*page, error) {
	text, info, err := readNote(path)
	if err != nil {
		return nil, err
	}
	return &page{
		Title:       "Quotes",
		DateUpdated: modifiedDate(info),
		Content:     formatQuotes(text),
		OutPath:     "quotes.html",
	}, nil
}

func readNote(path string) (string, fs.FileInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, err
	}
	return string(raw), info, nil
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
