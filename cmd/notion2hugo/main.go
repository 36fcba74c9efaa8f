package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/notion2hugo/internal"
	"github.com/starford/notion2hugo/internal/apperr"
	pkgconfig "github.com/starford/notion2hugo/pkg/config"
)

// exitCompletedWithErrors is returned when the conversion went through but
// recorded failures.
const exitCompletedWithErrors = 2

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("expected <input> <hugo_dir>, got %d argument(s): %w",
			cmd.Args().Len(), apperr.ErrInvalidInvocation)
	}

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	inv := &internal.Invocation{
		Input:        cmd.Args().Get(0),
		HugoDir:      cmd.Args().Get(1),
		Source:       cmd.Bool("source"),
		Force:        cmd.Bool("force"),
		Clean:        cmd.Bool("clean"),
		CleanContent: cmd.Bool("clean-content"),
		CleanStatic:  cmd.Bool("clean-static"),
		KeepTemp:     cmd.Bool("keep-tmp-folder"),
		Module:       cmd.Bool("dm"),
		Verbose:      cmd.Bool("verbose"),
		Watch:        cmd.Bool("watch"),
		Overwrite:    cmd.String("overwrite"),
		Manifest:     cmd.String("manifest"),
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithInvocation(inv),
	}

	return internal.Run(ctx, opts...)
}

func main() {
	cmd := &cli.Command{
		Name:      "notion2hugo",
		Usage:     "Convert a Notion Markdown export into Hugo content and static trees",
		ArgsUsage: "<input> <hugo_dir>",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Path to config file",
				DefaultText: "notion2hugo.yaml",
				Value:       "notion2hugo.yaml",
				Sources:     cli.EnvVars("NOTION2HUGO_CONFIG"),
			},
			&cli.BoolFlag{
				Name:    "clean",
				Aliases: []string{"c"},
				Usage:   "Clean output 'content' and 'static' directories beforehand",
			},
			&cli.BoolFlag{
				Name:  "clean-content",
				Usage: "Clean output 'content' directory beforehand",
			},
			&cli.BoolFlag{
				Name:  "clean-static",
				Usage: "Clean output 'static' directory beforehand",
			},
			&cli.BoolFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Input is the unzipped directory",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite existing files in the hugo directory",
			},
			&cli.StringFlag{
				Name:    "overwrite",
				Aliases: []string{"o"},
				Usage:   "Hugo directory whose content, static and config file are copied over the generated files",
			},
			&cli.BoolFlag{
				Name:  "keep-tmp-folder",
				Usage: "Don't remove the temp folder the archive is extracted to",
			},
			&cli.BoolFlag{
				Name:  "dm",
				Usage: "The input is a single module export (a DM)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Increase verbosity",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Convert again whenever the source directory changes (needs --source)",
			},
			&cli.StringFlag{
				Name:    "manifest",
				Usage:   "SQLite file recording every generated page",
				Sources: cli.EnvVars("NOTION2HUGO_MANIFEST"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		if errors.Is(err, apperr.ErrCompletedWithErrors) {
			os.Exit(exitCompletedWithErrors)
		}
		os.Exit(1)
	}
}
