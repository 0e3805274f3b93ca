package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/internal/app"
	"github.com/patrickprogramme/srtscribe/internal/assets"
	"github.com/patrickprogramme/srtscribe/internal/bootstrap"
	"github.com/patrickprogramme/srtscribe/internal/config"
	"github.com/patrickprogramme/srtscribe/internal/logging"
	"github.com/patrickprogramme/srtscribe/internal/prereq"
	"github.com/urfave/cli/v3"
)

const defaultConfigName = "srtscribe.yaml"

var version = "dev"

func main() {
	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var (
		logOpts logging.Options
		flags   app.CLIFlags
		logger  *slog.Logger
	)

	cmd := &cli.Command{
		Name:    "srtscribe",
		Usage:   "Subtitle to Transcript Parser : archive zip de .srt -> transcript texte",
		Version: version,
		Flags:   append(logOpts.Flags(), transcriptFlags(&flags)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger = logOpts.New()
			slog.SetDefault(logger)
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if flags.FileIn == "" {
				return goerr.Wrap(app.ErrMissingInput, "--filein/-fin est requis")
			}
			cfg, err := loadConfig(flags.ConfigPath)
			if err != nil {
				return err
			}
			return app.New(cfg, &flags, logger).Run(ctx)
		},
		Commands: []*cli.Command{
			cmdCheck(&flags),
		},
	}

	if err := cmd.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("srtscribe failed", slog.Any("error", err))
		return err
	}
	return nil
}

func transcriptFlags(f *app.CLIFlags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "filein",
			Aliases:     []string{"fin"},
			Usage:       "the zipped subtitle archive containing the subtitles",
			Destination: &f.FileIn,
		},
		&cli.StringFlag{
			Name:        "fileout",
			Aliases:     []string{"fo"},
			Usage:       "the file to write the subtitles to",
			Destination: &f.FileOut,
		},
		&cli.StringFlag{
			Name:        "language",
			Aliases:     []string{"l"},
			Usage:       "the language to parse, abbreviated (eg. English would be en)",
			Destination: &f.Language,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file (yaml or toml)",
			Value:       defaultConfigName,
			Destination: &f.ConfigPath,
			Sources:     cli.EnvVars("SRTSCRIBE_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "header-format",
			Usage:       "transcript headers: regular or subfolder",
			Destination: &f.HeaderFormat,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "list the selected files in order without writing the transcript",
			Destination: &f.DryRun,
		},
		&cli.BoolFlag{
			Name:        "copy",
			Usage:       "copy the transcript to the clipboard",
			Destination: &f.Copy,
		},
	}
}

func cmdCheck(f *app.CLIFlags) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "vérifie la présence des programmes requis (prerequisites)",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(f.ConfigPath)
			if err != nil {
				return err
			}
			checker := prereq.NewChecker()
			statuses := checker.Check(cfg.Prerequisites)
			prereq.Render(os.Stdout, statuses)
			return checker.Require(cfg.Prerequisites)
		},
	}
}

// loadConfig : emplacement par défaut à côté de l'exécutable, créé depuis
// l'asset embarqué s'il n'existe pas.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigName || path == "" {
		if exePath, err := os.Executable(); err == nil {
			path = filepath.Join(filepath.Dir(exePath), defaultConfigName)
		} else {
			slog.Warn("impossible de déterminer le chemin de l'exécutable", slog.Any("error", err))
			path = defaultConfigName
		}
	}

	if err := bootstrap.EnsureConfigPresent(path, assets.Embedded, assets.DefaultConfigAsset); err != nil {
		slog.Warn("EnsureConfigPresent", slog.Any("error", err))
	}
	return config.Load(path)
}
