package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif", ".svg"}

// findArticleFiles lists .html and .md files under dir, sorted by path.
// A missing dir has no articles.
func findArticleFiles(dir string) ([]string, error) {
	files := make([]string, 0, 100)

	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			slog.Warn("Skipping unreadable path", "path", path, "error", err)
			return nil
		}

		if d.Type().IsRegular() && isArticleFile(path) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dir, walkFunc); err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// findAssetFiles lists the files under dir as slash-separated paths relative
// to it. A missing dir has no assets.
func findAssetFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func isArticleFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".html" || ext == ".md"
}

// findRankingFiles lists the *Rankings.txt notes directly inside notesDir.
func findRankingFiles(notesDir string) ([]string, error) {
	entries, err := os.ReadDir(notesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match("*Rankings.txt", e.Name()); ok {
			files = append(files, filepath.Join(notesDir, e.Name()))
		}
	}
	return files, nil
}

type albumSource struct {
	Name   string
	Dir    string
	Images []fs.FileInfo
}

// findAlbums treats every immediate subdirectory of imagesDir that holds at
// least one image as an album. Albums and images are sorted by name.
func findAlbums(imagesDir string) ([]albumSource, error) {
	entries, err := os.ReadDir(imagesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var albums []albumSource
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(imagesDir, e.Name())
		images, err := findImages(dir)
		if err != nil {
			return nil, err
		}
		if len(images) == 0 {
			slog.Debug("Skipping album without images", "path", dir)
			continue
		}
		albums = append(albums, albumSource{Name: e.Name(), Dir: dir, Images: images})
	}
	return albums, nil
}

func findImages(dir string) ([]fs.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []fs.FileInfo
	for _, e := range entries {
		if !e.Type().IsRegular() || !isImageFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		images = append(images, info)
	}
	return images, nil
}

func isImageFile(name string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(name)))
}

// readArticleFromFile parses one article. Markdown bodies are converted to
// HTML before code highlighting.
func readArticleFromFile(path, pagesDir string, md renderer, hl *highlighter) (*article, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(pagesDir, path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	header, body := splitArticle(string(fileContent))
	a, warnings := newArticle(header, body, titleFromName(stemOf(path)))
	for _, w := range warnings {
		slog.Warn("Best-effort article parse", "path", path, "problem", w)
	}

	a.SourcePath = path
	a.OutPath = rel
	if filepath.Ext(path) == ".md" {
		a.OutPath = strings.TrimSuffix(rel, ".md") + ".html"
		a.Content = md.render([]byte(a.Content))
	}

	a.Content, err = hl.highlightCodeBlocks(a.Content)
	if err != nil {
		return nil, err
	}
	a.Content = strings.TrimSpace(a.Content)

	return a, nil
}
