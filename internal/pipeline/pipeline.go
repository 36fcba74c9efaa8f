// Package pipeline runs one full conversion: cleaning, the tree walk, the tag
// index, weights, the overwrite copy and the page manifest.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"

	"github.com/starford/notion2hugo/internal/apperr"
	"github.com/starford/notion2hugo/internal/manifest"
	"github.com/starford/notion2hugo/internal/repair"
	"github.com/starford/notion2hugo/internal/report"
	"github.com/starford/notion2hugo/internal/storage"
	"github.com/starford/notion2hugo/internal/tagindex"
	"github.com/starford/notion2hugo/internal/tags"
	"github.com/starford/notion2hugo/internal/walker"
	"github.com/starford/notion2hugo/internal/weights"
)

// Options configures a Pipeline.
type Options struct {
	HugoDir    string
	ContentDir string
	StaticDir  string
	IndexFile  string
	// ConfigFile is the site configuration copied from Overwrite.
	ConfigFile string

	ModulePrefix string
	TagsHeading  string
	Ignore       []string

	Force        bool
	Clean        bool
	CleanContent bool
	CleanStatic  bool
	// Module converts a single module export into content/<module>.
	Module bool
	// Overwrite is a site folder whose content, static and config file are
	// copied over the generated output.
	Overwrite string
	// ManifestPath enables the SQLite page manifest.
	ManifestPath string
}

// Pipeline converts an export folder into a Hugo site.
type Pipeline struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Pipeline.
func New(opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{opts: opts, logger: logger}
}

// Run converts exportDir. The returned error is fatal; non-fatal problems
// are in the report.
func (p *Pipeline) Run(ctx context.Context, exportDir string) (*report.Report, error) {
	o := p.opts
	if err := p.checkOverwrite(); err != nil {
		return nil, err
	}

	src, err := storage.NewOS(exportDir)
	if err != nil {
		return nil, fmt.Errorf("pipeline: export: %w", err)
	}
	if err := os.MkdirAll(o.HugoDir, 0o755); err != nil {
		return nil, fmt.Errorf("pipeline: create hugo dir: %w", err)
	}
	site, err := storage.NewOS(o.HugoDir)
	if err != nil {
		return nil, fmt.Errorf("pipeline: hugo dir: %w", err)
	}

	contentOut, staticOut := o.ContentDir, o.StaticDir
	start := walker.Root
	if o.Module {
		folder, err := moduleFolder(src)
		if err != nil {
			return nil, err
		}
		contentOut = path.Join(o.ContentDir, folder)
		staticOut = path.Join(o.StaticDir, folder)
		start = walker.Section
		p.logger.Info("module mode",
			slog.String("content", contentOut),
			slog.String("static", staticOut))
	}

	if err := p.clean(site, contentOut, staticOut); err != nil {
		return nil, err
	}

	rep := &report.Report{}
	table := tags.NewTable()
	w := walker.New(src, site, walker.Options{
		ContentDir:   o.ContentDir,
		StaticDir:    o.StaticDir,
		IndexFile:    o.IndexFile,
		ModulePrefix: o.ModulePrefix,
		Ignore:       o.Ignore,
		Force:        o.Force,
		KeepRoots:    o.Module,
		Start:        start,
	}, p.logger)
	if err := w.Walk(ctx, rep, table); err != nil {
		return rep, err
	}

	p.logger.Debug("writing tag indexes", slog.Int("modules", table.Len()))
	if err := tagindex.New(site, o.ContentDir, o.IndexFile, o.TagsHeading, p.logger).WriteAll(table); err != nil {
		return rep, err
	}

	if err := weights.New(site, o.IndexFile, p.logger).Assign(ctx, o.ContentDir, rep); err != nil {
		return rep, err
	}

	if err := p.overwrite(); err != nil {
		return rep, err
	}

	if o.ManifestPath != "" {
		if err := p.syncManifest(site); err != nil {
			return rep, err
		}
	}

	p.logger.Info("conversion finished",
		slog.Int("failures", len(rep.Failures())),
		slog.Int("warnings", rep.Warnings()))
	return rep, nil
}

// moduleFolder returns the output folder of a module export, named after
// its single top-level note.
func moduleFolder(src storage.Provider) (string, error) {
	entries, err := src.ReadDir("")
	if err != nil {
		return "", fmt.Errorf("pipeline: %w", err)
	}
	var notes []string
	for _, e := range entries {
		if e.Mode().IsRegular() && strings.HasSuffix(e.Name(), repair.DocumentExt) {
			notes = append(notes, e.Name())
		}
	}
	if len(notes) != 1 {
		return "", fmt.Errorf("pipeline: %q holds %d top-level notes, a module export has exactly one: %w",
			src.Root(), len(notes), apperr.ErrNotModuleExport)
	}
	return repair.FolderName(notes[0]), nil
}

func (p *Pipeline) clean(site storage.Provider, contentOut, staticOut string) error {
	o := p.opts
	if o.Clean || o.CleanContent {
		p.logger.Info("cleaning output", slog.String("dir", contentOut))
		if err := site.RemoveAll(contentOut); err != nil {
			return fmt.Errorf("pipeline: clean: %w", err)
		}
	}
	if o.Clean || o.CleanStatic {
		p.logger.Info("cleaning output", slog.String("dir", staticOut))
		if err := site.RemoveAll(staticOut); err != nil {
			return fmt.Errorf("pipeline: clean: %w", err)
		}
	}
	return nil
}

func (p *Pipeline) checkOverwrite() error {
	dir := p.opts.Overwrite
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("pipeline: --overwrite %q: %w", dir, apperr.ErrNotDirectory)
	}
	return nil
}

// overwrite merges the overwrite folder into the generated site.
func (p *Pipeline) overwrite() error {
	o := p.opts
	if o.Overwrite == "" {
		return nil
	}
	for _, sub := range []string{o.ContentDir, o.StaticDir} {
		from := filepath.Join(o.Overwrite, sub)
		if info, err := os.Stat(from); err != nil || !info.IsDir() {
			p.logger.Warn("overwrite folder has no such directory", slog.String("dir", from))
			continue
		}
		p.logger.Info("overwriting generated files", slog.String("from", from))
		if err := copy.Copy(from, filepath.Join(o.HugoDir, sub)); err != nil {
			return fmt.Errorf("pipeline: overwrite %s: %w", sub, err)
		}
	}

	cfgFile := filepath.Join(o.Overwrite, o.ConfigFile)
	if info, err := os.Stat(cfgFile); err != nil || !info.Mode().IsRegular() {
		p.logger.Info("overwrite folder has no site config", slog.String("file", cfgFile))
		return nil
	}
	p.logger.Info("overwriting site config", slog.String("file", cfgFile))
	if err := copy.Copy(cfgFile, filepath.Join(o.HugoDir, o.ConfigFile)); err != nil {
		return fmt.Errorf("pipeline: overwrite config: %w", err)
	}
	return nil
}

func (p *Pipeline) syncManifest(site storage.Provider) error {
	db, err := manifest.Open(p.opts.ManifestPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := manifest.Sync(db, site, p.opts.ContentDir, p.opts.IndexFile, p.logger); err != nil {
		return fmt.Errorf("pipeline: manifest: %w", err)
	}
	p.logger.Debug("manifest updated", slog.String("path", p.opts.ManifestPath))
	return nil
}
