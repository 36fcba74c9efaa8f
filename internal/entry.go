// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/starford/notion2hugo/internal/apperr"
	"github.com/starford/notion2hugo/internal/archive"
	"github.com/starford/notion2hugo/internal/pipeline"
	"github.com/starford/notion2hugo/internal/watcher"
)

// Run converts the export described by the options. It returns an error
// wrapping apperr.ErrCompletedWithErrors when the conversion finished with
// recorded failures.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	if app.invocation == nil {
		return fmt.Errorf("invocation is required: %w", apperr.ErrInvalidInvocation)
	}

	cfg := app.config
	inv := app.invocation

	var out io.Writer = os.Stderr
	if app.logOutput != nil {
		out = app.logOutput
	}
	logger := newLogger(cfg.App, inv.Verbose, out)
	slog.SetDefault(logger)

	if inv.Watch && !inv.Source {
		return fmt.Errorf("--watch needs --source: %w", apperr.ErrInvalidInvocation)
	}

	manifestPath := cfg.Manifest.Path
	if inv.Manifest != "" {
		manifestPath = inv.Manifest
	}

	logger.Info("Configuration loaded",
		slog.String("input", inv.Input),
		slog.String("hugo_dir", inv.HugoDir),
		slog.String("content_dir", cfg.Site.ContentDir),
		slog.String("static_dir", cfg.Site.StaticDir),
		slog.String("module_prefix", cfg.Modules.Prefix),
		slog.String("manifest", manifestPath),
		slog.String("log_level", cfg.App.LogLevel.String()))

	exp, err := archive.Prepare(inv.Input, archive.Options{
		Source:   inv.Source,
		KeepTemp: inv.KeepTemp,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := exp.Cleanup(); err != nil {
			logger.Warn("cleanup failed", slog.String("error", err.Error()))
		}
	}()

	popts := pipeline.Options{
		HugoDir:      inv.HugoDir,
		ContentDir:   cfg.Site.ContentDir,
		StaticDir:    cfg.Site.StaticDir,
		IndexFile:    cfg.Site.IndexFile,
		ConfigFile:   cfg.Site.ConfigFile,
		ModulePrefix: cfg.Modules.Prefix,
		TagsHeading:  cfg.Modules.TagsHeading,
		Ignore:       cfg.Source.Ignore,
		Force:        inv.Force,
		Clean:        inv.Clean,
		CleanContent: inv.CleanContent,
		CleanStatic:  inv.CleanStatic,
		Module:       inv.Module,
		Overwrite:    inv.Overwrite,
		ManifestPath: manifestPath,
	}

	rep, err := pipeline.New(popts, logger).Run(ctx, exp.Dir)
	if err != nil {
		return err
	}
	if !inv.Watch {
		return rep.Err()
	}
	if rep.Failed() {
		logger.Warn("first conversion recorded failures, watching anyway",
			slog.Int("failures", len(rep.Failures())))
	}

	// Later conversions start from a clean output.
	popts.Clean = true
	popts.Force = true
	again := pipeline.New(popts, logger)

	return watch(ctx, exp.Dir, cfg.Watch, logger, func(ctx context.Context) error {
		rep, err := again.Run(ctx, exp.Dir)
		if err != nil {
			return err
		}
		return rep.Err()
	})
}

// watch runs the watcher until a signal arrives or ctx is cancelled.
func watch(ctx context.Context, root string, cfg WatchConfig, logger *slog.Logger, run watcher.RunFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return watcher.Watch(gCtx, root, cfg.Debounce, run, logger)
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-gCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Watch error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Watch stopped")
	return nil
}
