package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/otiai10/copy"
)

const (
	fileMode = os.FileMode(0664)
	dirMode  = os.FileMode(0775)
)

// outputWriter places files below one output directory.
type outputWriter struct {
	dir string
}

// emptyOutputDir removes everything inside dir, creating it if needed.
func emptyOutputDir(dir string) (*outputWriter, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return nil, err
		}
	}
	return &outputWriter{dir: dir}, nil
}

// resolve maps a slash-separated site path to a file below the output
// directory, refusing paths that climb out of it.
func (w *outputWriter) resolve(sitePath string) (string, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(sitePath, "/"))
	if rel == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, sitePath)
	}
	return filepath.Join(w.dir, rel), nil
}

func (w *outputWriter) writeFile(sitePath string, content []byte) error {
	path, err := w.resolve(sitePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// atomic.WriteFile keeps the temp file's restrictive mode for new files.
	return os.Chmod(path, fileMode)
}

// copyDir copies srcDir recursively to sitePath. A missing srcDir is skipped.
func (w *outputWriter) copyDir(srcDir, sitePath string) error {
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		slog.Debug("Nothing to copy", "path", srcDir)
		return nil
	}
	dest, err := w.resolve(sitePath)
	if err != nil {
		return err
	}
	slog.Info("Recursively copying", "from", srcDir, "to", dest)
	return copy.Copy(srcDir, dest)
}

func (w *outputWriter) copyFile(src, sitePath string) error {
	dest, err := w.resolve(sitePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), dirMode); err != nil {
		return err
	}
	return copy.Copy(src, dest)
}
