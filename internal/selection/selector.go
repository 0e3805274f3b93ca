package selection

import (
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/internal/env"
	"github.com/patrickprogramme/srtscribe/pkg/model"
)

// Select parcourt root récursivement et retourne les fichiers réguliers, à
// toute profondeur, dont le nom satisfait tous les critères.
// Ordre de sortie : ordre lexical de filepath.WalkDir.
func Select(e *env.Env, root string, criteria []Criterion) ([]model.FileEntry, error) {
	log := e.Logger()

	var entries []model.FileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}

		name := d.Name()
		if !SelectFile(name, criteria) {
			log.Debug("file skipped", slog.String("file", name))
			return nil
		}

		entry := model.FileEntry{Dir: filepath.Dir(path), Name: name}
		log.Debug("file selected", slog.String("root", entry.Dir), slog.String("file", entry.Name))
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "parcours du répertoire", goerr.V("root", root))
	}

	log.Info("subtitle files selected",
		slog.Int("count", len(entries)),
		slog.Int("criteria", len(criteria)),
	)
	return entries, nil
}
