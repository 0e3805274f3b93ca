package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// Options : configuration du logger, alimentée par les flags
type Options struct {
	Level string
	JSON  bool
}

// Flags retourne les flags CLI du logger
func (o *Options) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "niveau de log (debug, info, warn, error)",
			Value:       "info",
			Destination: &o.Level,
			Sources:     cli.EnvVars("SRTSCRIBE_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "logs au format JSON",
			Destination: &o.JSON,
			Sources:     cli.EnvVars("SRTSCRIBE_LOG_JSON"),
		},
	}
}

// ParseLevel : niveau inconnu -> info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New construit le logger sur stderr (stdout reste libre pour les tableaux).
func (o *Options) New() *slog.Logger {
	return o.NewWithWriter(os.Stderr)
}

// NewWithWriter : JSON si demandé, sinon clog avec couleurs si w est un terminal.
func (o *Options) NewWithWriter(w io.Writer) *slog.Logger {
	level := ParseLevel(o.Level)
	if o.JSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	handler := clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithColor(isTerminal(w)),
	)
	return slog.New(handler)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
