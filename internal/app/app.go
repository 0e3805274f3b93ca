package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/internal/archive"
	"github.com/patrickprogramme/srtscribe/internal/bootstrap"
	"github.com/patrickprogramme/srtscribe/internal/config"
	"github.com/patrickprogramme/srtscribe/internal/env"
	"github.com/patrickprogramme/srtscribe/internal/fsutil"
	"github.com/patrickprogramme/srtscribe/internal/ordering"
	"github.com/patrickprogramme/srtscribe/internal/prereq"
	"github.com/patrickprogramme/srtscribe/internal/selection"
	"github.com/patrickprogramme/srtscribe/internal/subtitles"
	"github.com/patrickprogramme/srtscribe/internal/transcript"
)

var ErrMissingInput = goerr.New("aucune archive d'entrée fournie")

// CLIFlags contient les informations venant des flags de l'app.
// Une valeur vide signifie "flag absent" : la config s'applique.
type CLIFlags struct {
	ConfigPath   string
	FileIn       string
	FileOut      string
	Language     string
	HeaderFormat string
	DryRun       bool
	Copy         bool
}

// App orchestre le pipeline : extraction -> sélection -> tri -> transcript -> nettoyage.
type App struct {
	cfg   *config.Config
	flags *CLIFlags
	log   *slog.Logger
	out   io.Writer

	checker   *prereq.Checker
	extractor archive.Extractor
	parser    subtitles.Parser
}

// Option permet d'injecter des implémentations (tests).
type Option func(*App)

func WithExtractor(x archive.Extractor) Option { return func(a *App) { a.extractor = x } }
func WithParser(p subtitles.Parser) Option     { return func(a *App) { a.parser = p } }
func WithChecker(c *prereq.Checker) Option     { return func(a *App) { a.checker = c } }

// WithOutput : destination des tableaux (--dry-run), stdout par défaut
func WithOutput(w io.Writer) Option { return func(a *App) { a.out = w } }

// New construit l'application. Extracteur et parser sont résolus depuis la
// config dans Run s'ils n'ont pas été injectés.
func New(cfg *config.Config, flags *CLIFlags, log *slog.Logger, opts ...Option) *App {
	if log == nil {
		log = slog.Default()
	}
	if flags == nil {
		flags = &CLIFlags{}
	}
	a := &App{
		cfg:     cfg,
		flags:   flags,
		log:     log,
		out:     os.Stdout,
		checker: prereq.NewChecker(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run exécute le pipeline une fois. Toute erreur est terminale.
func (a *App) Run(ctx context.Context) (err error) {
	MergeSettings(a.cfg, a.flags, a.log)

	warnings, err := a.cfg.Validate()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		a.log.Warn(w)
	}

	e := env.New(a.cfg, a.log)
	log := e.Logger()
	log.Info("Starting the subtitle parser",
		slog.String("archive", a.cfg.ZippedSubFile),
		slog.String("lang", a.cfg.LangAbbr),
	)

	// entrées invalides : échec immédiat, avant toute I/O
	criteria, err := selection.CriteriaFromConfig(a.cfg)
	if err != nil {
		return err
	}
	if a.parser == nil {
		p, err := subtitles.NewSRTParser(a.cfg.Encoding)
		if err != nil {
			return err
		}
		a.parser = p
	}
	asm, err := transcript.NewAssembler(e, a.parser)
	if err != nil {
		return err
	}
	if a.extractor == nil {
		x, err := archive.New(a.cfg.Extractor)
		if err != nil {
			return err
		}
		a.extractor = x
	}

	if err := a.checker.Require(a.cfg.Prerequisites); err != nil {
		return err
	}

	scratch, err := bootstrap.PrepareScratch(a.cfg.TempDir, a.cfg.KeepTempDir, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := scratch.Cleanup(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if err := a.extractor.Extract(ctx, a.cfg.ZippedSubFile, scratch.Dir); err != nil {
		return goerr.Wrap(err, "préparation : décompression", goerr.V("extractor", a.extractor.Name()))
	}
	log.Debug("archive extracted", slog.String("extractor", a.extractor.Name()), slog.String("dir", scratch.Dir))

	entries, err := selection.Select(e, scratch.Dir, criteria)
	if err != nil {
		return err
	}
	ordered := ordering.Order(e, entries)

	if a.flags.DryRun {
		return RenderSelection(a.out, scratch.Dir, ordered, a.cfg)
	}

	outPath := a.cfg.FileToWriteTo
	if outPath == "" {
		outPath = fsutil.TranscriptNameFor(a.cfg.ZippedSubFile)
	}

	sum, err := asm.Write(ordered, outPath)
	if err != nil {
		return err
	}

	if a.cfg.CopyToClipboard {
		if err := CopyTranscript(sum.Path); err != nil {
			log.Warn("transcript not copied to clipboard", slog.Any("error", err))
		} else {
			log.Info("transcript copied to clipboard")
		}
	}

	log.Info("success: output written",
		slog.String("path", sum.Path),
		slog.Int("files", sum.Files),
		slog.String("size", humanize.Bytes(uint64(sum.Bytes))),
	)
	return nil
}
