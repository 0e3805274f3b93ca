// Package archive décompresse l'archive de sous-titres dans le répertoire
// temporaire, via unzip (défaut) ou archive/zip.
package archive

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/pkg/model"
)

var (
	ErrExtractFailed    = goerr.New("échec de la décompression de l'archive")
	ErrUnknownExtractor = goerr.New("extracteur d'archive inconnu")
	ErrUnsafePath       = goerr.New("entrée d'archive hors du répertoire de destination")
)

// Extractor peuple destDir avec l'arborescence de l'archive.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, archivePath, destDir string) error
}

// New retourne l'extracteur configuré ("unzip" ou "builtin").
func New(kind string) (Extractor, error) {
	k, err := model.ParseExtractorKind(kind)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrUnknownExtractor, err), "résolution de l'extracteur")
	}
	switch k {
	case model.ExtractorBuiltin:
		return Builtin{}, nil
	default:
		return NewUnzip(""), nil
	}
}
