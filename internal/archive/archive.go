// Package archive turns the command-line input into an export folder: either
// the folder itself or a private extraction of a zip export.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/starford/notion2hugo/internal/apperr"
)

// ZipMIME is the only archive type accepted as input.
const ZipMIME = "application/zip"

// Options describes how the input is given.
type Options struct {
	// Source means the input is an already extracted folder.
	Source bool
	// KeepTemp leaves the extraction folder in place after the run.
	KeepTemp bool
}

// Export is a prepared export folder.
type Export struct {
	// Dir is the folder to convert.
	Dir string

	tmp    string
	keep   bool
	logger *slog.Logger
}

// Prepare validates input and returns the folder to convert. A zip input is
// extracted into a new temporary folder.
func Prepare(input string, opts Options, logger *slog.Logger) (*Export, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Source && opts.KeepTemp {
		return nil, fmt.Errorf("archive: --keep-tmp-folder has no effect with --source: %w", apperr.ErrInvalidInvocation)
	}

	info, err := os.Stat(input)
	if opts.Source {
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("archive: input %q: %w", input, apperr.ErrNotDirectory)
		}
		return &Export{Dir: input, logger: logger}, nil
	}
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("archive: input %q: %w", input, apperr.ErrNotFile)
	}
	if err := checkZip(input); err != nil {
		return nil, err
	}

	tmp, err := os.MkdirTemp("", "notion2hugo-*")
	if err != nil {
		return nil, fmt.Errorf("archive: create temp dir: %w", err)
	}
	logger.Debug("extracting export", slog.String("archive", input), slog.String("dir", tmp))
	if err := Extract(input, tmp); err != nil {
		_ = os.RemoveAll(tmp)
		return nil, err
	}
	return &Export{Dir: tmp, tmp: tmp, keep: opts.KeepTemp, logger: logger}, nil
}

// Cleanup removes the extraction folder unless it must be kept.
func (e *Export) Cleanup() error {
	if e.tmp == "" {
		return nil
	}
	if e.keep {
		e.logger.Info("keeping extracted export", slog.String("dir", e.tmp))
		return nil
	}
	if err := os.RemoveAll(e.tmp); err != nil {
		return fmt.Errorf("archive: remove temp dir: %w", err)
	}
	return nil
}

func checkZip(path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("archive: detect type of %q: %w", path, err)
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is(ZipMIME) {
			return nil
		}
	}
	return fmt.Errorf("archive: %q is %s: %w", path, mt.String(), apperr.ErrUnsupportedArchive)
}

// Extract unpacks the zip file at src into dest. Entries that would land
// outside dest are rejected.
func Extract(src, dest string) error {
	r, err := zip.OpenReader(src)
	if errors.Is(err, zip.ErrInsecurePath) {
		_ = r.Close()
		return fmt.Errorf("archive: %q: %w: %w", src, err, apperr.ErrUnsupportedArchive)
	}
	if err != nil {
		return fmt.Errorf("archive: open %q: %w", src, err)
	}
	defer r.Close()

	root, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("archive: resolve %q: %w", dest, err)
	}
	for _, f := range r.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("archive: entry %q escapes destination: %w", f.Name, apperr.ErrUnsupportedArchive)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("archive: mkdir: %w", err)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("archive: mkdir: %w", err)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("archive: open entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("archive: create %q: %w", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf("archive: write %q: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("archive: close %q: %w", target, err)
	}
	return nil
}
