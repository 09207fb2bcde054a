package main

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

const dateStampFormat = "2006-01-02"

type article struct {
	Title         string
	DatePublished string
	DateUpdated   string
	Description   string
	Tags          []tag
	// Published is zero when date_published is absent or unparsable.
	Published time.Time
	Content   string

	SourcePath string
	// Slash-separated path relative to the output root.
	OutPath string
}

// LogValue summarizes the article for debug logging.
func (a *article) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("title", a.Title),
		slog.String("date_published", a.DatePublished),
		slog.Any("tags", a.Tags),
		slog.String("body", excerpt(a.Content, 200)),
	)
}

// excerpt cuts s to at most n runes.
func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func (a *article) dated() bool { return !a.Published.IsZero() }

type articles []*article

// sortByDate orders newest first; undated articles go last, ties by title
// then path.
func (as articles) sortByDate() {
	slices.SortStableFunc(as, func(a, b *article) int {
		if a.dated() != b.dated() {
			if a.dated() {
				return -1
			}
			return 1
		}
		if c := b.Published.Compare(a.Published); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(a.OutPath, b.OutPath)
	})
}

func (as articles) latestDate() time.Time {
	var t time.Time
	for _, a := range as {
		if a.Published.After(t) {
			t = a.Published
		}
	}
	return t
}

// articleHeader is the parsed metadata comment of an article.
type articleHeader struct {
	fields map[string]string
	// Set when a comment opened but never closed.
	unterminated bool
}

// splitArticle separates the leading "<!-- key: value ... -->" block from the
// body. Without a well-formed block the whole text is the body.
func splitArticle(text string) (articleHeader, string) {
	lines := strings.Split(strings.TrimPrefix(text, "\ufeff"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	h := articleHeader{fields: make(map[string]string)}
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "<!--" {
		return h, strings.TrimSpace(strings.Join(lines, "\n"))
	}

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "-->" {
			return h, strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key != "" && value != "" {
			h.fields[key] = value
		}
	}

	return articleHeader{fields: map[string]string{}, unterminated: true},
		strings.TrimSpace(strings.Join(lines, "\n"))
}

// newArticle builds the record from a parsed header. fallbackTitle is used
// when the header has no title.
func newArticle(h articleHeader, body, fallbackTitle string) (*article, []error) {
	var warnings []error
	a := &article{
		Title:         h.fields["title"],
		DatePublished: h.fields["date_published"],
		DateUpdated:   h.fields["date_updated"],
		Description:   h.fields["description"],
		Tags:          parseTags(h.fields["tags"]),
		Content:       body,
	}
	if a.Title == "" {
		a.Title = fallbackTitle
	}
	if a.DatePublished != "" {
		d, err := time.Parse(dateStampFormat, a.DatePublished)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("date_published %q is not %s", a.DatePublished, dateStampFormat))
		} else {
			a.Published = d
		}
	}
	if a.DateUpdated != "" {
		if _, err := time.Parse(dateStampFormat, a.DateUpdated); err != nil {
			warnings = append(warnings, fmt.Errorf("date_updated %q is not %s", a.DateUpdated, dateStampFormat))
		}
	}
	if h.unterminated {
		warnings = append(warnings, fmt.Errorf("metadata comment is never closed, treating the whole file as content"))
	}
	return a, warnings
}

func parseTags(raw string) []tag {
	tags := make([]tag, 0, 5)
	if raw == "" {
		return tags
	}
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(tags, tag(t)) {
			tags = append(tags, tag(t))
		}
	}
	return tags
}

// titleFromName turns a file stem like "my-first_post" into "my first post".
func titleFromName(stem string) string {
	return strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(stem))
}
