package transcript

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/internal/env"
	"github.com/patrickprogramme/srtscribe/internal/subtitles"
	"github.com/patrickprogramme/srtscribe/pkg/model"
)

// Assembler écrit le transcript : pour chaque fichier trié, un en-tête puis
// le texte de ses sous-titres.
type Assembler struct {
	env     *env.Env
	parser  subtitles.Parser
	headers Headers
}

// Summary : bilan d'une écriture
type Summary struct {
	Path  string
	Files int
	Bytes int64
}

// NewAssembler choisit la stratégie d'en-têtes d'après cfg.HeaderFormat et cfg.LangAbbr.
func NewAssembler(e *env.Env, parser subtitles.Parser) (*Assembler, error) {
	cfg := e.Config()
	headers, err := NewHeaders(cfg.HeaderFormat, cfg.LangAbbr)
	if err != nil {
		return nil, err
	}
	return &Assembler{env: e, parser: parser, headers: headers}, nil
}

// Write crée (ou tronque) outPath puis y ajoute les fichiers dans l'ordre.
// Le fichier est fermé dans tous les cas ; en cas d'erreur il peut rester incomplet.
func (a *Assembler) Write(entries []model.FileEntry, outPath string) (sum Summary, err error) {
	log := a.env.Logger()
	sum.Path = outPath

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return sum, goerr.Wrap(err, "mkdir sortie", goerr.V("dir", dir))
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return sum, goerr.Wrap(err, "création du fichier de sortie", goerr.V("path", outPath))
	}
	cw := &countingWriter{w: f}
	bw := bufio.NewWriter(cw)
	defer func() {
		flushErr := bw.Flush()
		closeErr := f.Close()
		if ferr := errors.Join(flushErr, closeErr); ferr != nil && err == nil {
			err = goerr.Wrap(ferr, "fermeture du fichier de sortie", goerr.V("path", outPath))
		}
		sum.Bytes = cw.n
	}()

	for _, entry := range entries {
		if err := a.writeEntry(bw, entry); err != nil {
			return sum, err
		}
		sum.Files++
		log.Debug("file appended", slog.String("file", entry.Name))
	}
	return sum, nil
}

func (a *Assembler) writeEntry(w io.StringWriter, entry model.FileEntry) error {
	if _, err := w.WriteString(a.headers.Header(entry)); err != nil {
		return goerr.Wrap(err, "écriture de l'en-tête", goerr.V("file", entry.Name))
	}
	text, err := subtitles.TextFromFile(a.parser, entry.Path())
	if err != nil {
		return goerr.Wrap(err, "extraction du texte", goerr.V("file", entry.Path()))
	}
	if _, err := w.WriteString(text); err != nil {
		return goerr.Wrap(err, "écriture du texte", goerr.V("file", entry.Name))
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
