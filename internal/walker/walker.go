// Package walker mirrors a Notion export into a Hugo content tree and a
// static resource tree.
package walker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/starford/notion2hugo/internal/apperr"
	"github.com/starford/notion2hugo/internal/content"
	"github.com/starford/notion2hugo/internal/repair"
	"github.com/starford/notion2hugo/internal/report"
	"github.com/starford/notion2hugo/internal/storage"
	"github.com/starford/notion2hugo/internal/tags"
)

// Options controls one traversal.
type Options struct {
	// ContentDir and StaticDir are the output roots, relative to the site.
	ContentDir string
	StaticDir  string
	// IndexFile is the name of the page written in every output folder.
	IndexFile string
	// ModulePrefix marks module folders directly below a section.
	ModulePrefix string
	// Ignore holds doublestar patterns matched against source paths.
	Ignore []string
	// Force allows writing into output folders that predate the run.
	Force bool
	// KeepRoots allows the content and static roots to predate the run.
	KeepRoots bool
	// Start is the level of the source root.
	Start Level
}

// Walker converts a source tree. It holds no per-run state.
type Walker struct {
	src    storage.Provider
	site   storage.Provider
	opts   Options
	logger *slog.Logger
}

// New creates a Walker reading from src and writing below site.
func New(src, site storage.Provider, opts Options, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.IndexFile == "" {
		opts.IndexFile = "_index.md"
	}
	return &Walker{src: src, site: site, opts: opts, logger: logger}
}

// traversal is the state of one Walk call.
type traversal struct {
	ctx   context.Context
	rep   *report.Report
	table *tags.Table
	// created holds output folders made during this run.
	created map[string]struct{}
	// written maps each page written during this run to its source.
	written map[string]string
}

// Walk converts the whole source tree. Per-page problems are recorded in rep,
// tags are collected into table. The returned error is fatal.
func (w *Walker) Walk(ctx context.Context, rep *report.Report, table *tags.Table) error {
	t := &traversal{
		ctx:     ctx,
		rep:     rep,
		table:   table,
		created: make(map[string]struct{}),
		written: make(map[string]string),
	}
	w.logger.Info("walking source",
		slog.String("source", w.src.Root()),
		slog.String("site", w.site.Root()),
		slog.String("level", w.opts.Start.String()))
	return w.walkDir(t, "", w.opts.ContentDir, w.opts.StaticDir, w.opts.Start, nil)
}

func (w *Walker) walkDir(t *traversal, srcDir, mdDir, staticDir string, level Level, mod *tags.Module) error {
	if err := t.ctx.Err(); err != nil {
		return err
	}
	root := srcDir == ""
	if err := w.ensureDir(t, mdDir, root); err != nil {
		return err
	}
	if err := w.ensureDir(t, staticDir, root); err != nil {
		return err
	}
	w.logger.Debug("directory",
		slog.String("source", srcDir),
		slog.String("dest", mdDir),
		slog.String("level", level.String()))

	entries, err := w.readDir(srcDir)
	if err != nil {
		return err
	}

	var siblings []string
	if level != Root {
		siblings = siblingNames(entries)
	}

	for _, entry := range entries {
		name := entry.Name()
		srcPath := path.Join(srcDir, name)
		folder := repair.FolderName(name)

		childMd, childStatic := mdDir, staticDir
		if level != Root {
			childMd = path.Join(mdDir, folder)
			childStatic = path.Join(staticDir, folder)
		}

		switch {
		case entry.IsDir():
			childLevel := level.Child(folder, w.opts.ModulePrefix)
			childMod := mod
			if childLevel == Module {
				w.logger.Debug("module", slog.String("dir", w.rel(childMd)))
				childMod = t.table.Module(w.rel(childMd))
			}
			if err := w.walkDir(t, srcPath, childMd, childStatic, childLevel, childMod); err != nil {
				return err
			}
		case entry.Mode().IsRegular() && strings.HasSuffix(name, repair.DocumentExt):
			pageMod := mod
			if level.Child(folder, w.opts.ModulePrefix) == Module {
				pageMod = t.table.Module(w.rel(childMd))
			}
			if err := w.writePage(t, srcPath, childMd, siblings, pageMod); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			dest := path.Join(staticDir, folder)
			if err := w.copyResource(srcPath, dest); err != nil {
				return err
			}
		default:
			t.rep.Warn(w.logger, "unknown entry type, skipped",
				slog.String("path", srcPath),
				slog.String("mode", entry.Mode().String()))
		}
	}
	return nil
}

// ensureDir creates an output folder. A folder that predates the run is only
// accepted with Force, or for the roots when KeepRoots is set.
func (w *Walker) ensureDir(t *traversal, dir string, root bool) error {
	if _, ok := t.created[dir]; ok {
		return nil
	}
	if w.site.IsDir(dir) {
		if !w.opts.Force && !(root && w.opts.KeepRoots) {
			return fmt.Errorf("walker: directory %q: %w (use --force to overwrite)", dir, apperr.ErrAlreadyExists)
		}
	} else if err := w.site.Mkdir(dir); err != nil {
		return fmt.Errorf("walker: %w", err)
	}
	t.created[dir] = struct{}{}
	return nil
}

func (w *Walker) readDir(dir string) ([]os.FileInfo, error) {
	entries, err := w.src.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}
	kept := entries[:0]
	for _, e := range entries {
		p := path.Join(dir, e.Name())
		if w.ignored(p) {
			w.logger.Debug("ignored", slog.String("path", p))
			continue
		}
		kept = append(kept, e)
	}
	return kept, nil
}

func (w *Walker) ignored(p string) bool {
	for _, pattern := range w.opts.Ignore {
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
	}
	return false
}

// siblingNames returns the output folder names of the folders and notes in
// entries. Resource files are left out.
func siblingNames(entries []os.FileInfo) []string {
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), repair.DocumentExt) {
			names = append(names, repair.FolderName(e.Name()))
		}
	}
	return names
}

func (w *Walker) writePage(t *traversal, srcPath, pageDir string, siblings []string, mod *tags.Module) error {
	if _, ok := t.created[pageDir]; !ok && !w.site.IsDir(pageDir) {
		if err := w.site.Mkdir(pageDir); err != nil {
			return fmt.Errorf("walker: %w", err)
		}
		t.created[pageDir] = struct{}{}
	}

	index := path.Join(pageDir, w.opts.IndexFile)
	if prev, ok := t.written[index]; ok {
		t.rep.Fail(w.logger, fmt.Errorf("walker: %q and %q both map to %q, keeping the first: %w",
			prev, srcPath, index, apperr.ErrCollision))
		return nil
	}
	if !w.opts.Force && w.site.Exists(index) {
		return fmt.Errorf("walker: file %q: %w (use --force to overwrite)", index, apperr.ErrAlreadyExists)
	}

	data, err := w.src.Read(srcPath)
	if err != nil {
		return fmt.Errorf("walker: %w", err)
	}
	doc := content.Repair(content.Input{
		Data:     data,
		Source:   srcPath,
		Dest:     index,
		Siblings: siblings,
	}, w.logger)
	if err := w.site.Write(index, doc.Body); err != nil {
		return fmt.Errorf("walker: %w", err)
	}
	t.written[index] = srcPath
	w.logger.Debug("page written", slog.String("source", srcPath), slog.String("dest", index))

	if len(doc.Tags) == 0 {
		return nil
	}
	rel := w.rel(pageDir)
	if mod == nil {
		w.logger.Debug("tags outside any module dropped",
			slog.String("page", rel), slog.Int("count", len(doc.Tags)))
		return nil
	}
	for _, tag := range doc.Tags {
		if !mod.Add(tag, rel) {
			w.logger.Debug("tag already registered", slog.String("tag", tag), slog.String("page", rel))
		}
	}
	return nil
}

func (w *Walker) copyResource(srcPath, dest string) error {
	data, err := w.src.Read(srcPath)
	if err != nil {
		return fmt.Errorf("walker: %w", err)
	}
	if err := w.site.Write(dest, data); err != nil {
		return fmt.Errorf("walker: %w", err)
	}
	return nil
}

// rel returns dir relative to the content root, slash separated.
func (w *Walker) rel(dir string) string {
	return strings.TrimPrefix(strings.TrimPrefix(dir, w.opts.ContentDir), "/")
}
