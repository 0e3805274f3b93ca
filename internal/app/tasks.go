package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/internal/clipboard"
	"github.com/patrickprogramme/srtscribe/internal/config"
	"github.com/patrickprogramme/srtscribe/internal/ordering"
	"github.com/patrickprogramme/srtscribe/internal/transcript"
	"github.com/patrickprogramme/srtscribe/pkg/model"
)

// MergeSettings applique les flags présents par-dessus la config :
// un flag fourni a toujours priorité sur la même clé du fichier.
func MergeSettings(cfg *config.Config, f *CLIFlags, log *slog.Logger) {
	if f == nil {
		return
	}
	if f.FileIn != "" {
		cfg.ZippedSubFile = filepath.Clean(f.FileIn)
		log.Info("CLI override", slog.String("key", "zipped_sub_file"), slog.String("value", cfg.ZippedSubFile))
	}
	if f.FileOut != "" {
		cfg.FileToWriteTo = filepath.Clean(f.FileOut)
		log.Info("CLI override", slog.String("key", "file_to_write_to"), slog.String("value", cfg.FileToWriteTo))
	}
	if f.Language != "" {
		cfg.LangAbbr = strings.TrimSpace(f.Language)
		log.Info("CLI override", slog.String("key", "lang_abbr"), slog.String("value", cfg.LangAbbr))
	}
	if f.HeaderFormat != "" {
		cfg.HeaderFormat = strings.ToLower(strings.TrimSpace(f.HeaderFormat))
		log.Info("CLI override", slog.String("key", "header_format"), slog.String("value", cfg.HeaderFormat))
	}
	if f.Copy {
		cfg.CopyToClipboard = true
	}
}

// RenderSelection affiche la sélection triée (mode --dry-run) : rien n'est écrit.
func RenderSelection(w io.Writer, root string, entries []model.FileEntry, cfg *config.Config) error {
	headers, err := transcript.NewHeaders(cfg.HeaderFormat, cfg.LangAbbr)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Fichier", "Dossier", "Clé", "En-tête"})
	for i, entry := range entries {
		dir, err := filepath.Rel(root, entry.Dir)
		if err != nil {
			dir = entry.Dir
		}
		key := ordering.SortKey(entry.Name, cfg.Sort.Delimiter, cfg.Sort.Index)
		header := strings.Join(strings.Fields(headers.Header(entry)), " ")
		t.AppendRow(table.Row{i + 1, entry.Name, dir, key, header})
	}
	t.AppendFooter(table.Row{"", len(entries), "", "", ""})
	t.Render()
	return nil
}

// CopyTranscript copie le contenu du transcript écrit dans le presse-papier.
func CopyTranscript(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "lecture du transcript", goerr.V("path", path))
	}
	return clipboard.WriteAll(string(data))
}
