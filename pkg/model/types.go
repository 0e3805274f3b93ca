package model

import (
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// FileEntry représente un fichier de sous-titres découvert dans le répertoire
// temporaire : le dossier qui le contient et son nom.
// Valeur immuable, créée par la sélection puis consommée par le tri et l'assemblage.
type FileEntry struct {
	Dir  string
	Name string
}

// Path retourne le chemin complet du fichier.
func (e FileEntry) Path() string {
	return filepath.Join(e.Dir, e.Name)
}

// Stem retourne le nom du fichier sans son extension.
func (e FileEntry) Stem() string {
	return strings.TrimSuffix(e.Name, filepath.Ext(e.Name))
}

func (e FileEntry) String() string {
	return e.Path()
}

// HeaderFormat : mise en page des en-têtes du transcript
type HeaderFormat string

const (
	// HeaderRegular : un en-tête par fichier, construit à partir du nom
	HeaderRegular HeaderFormat = "regular"
	// HeaderSubfolder : un titre majeur par dossier, un titre mineur par fichier
	HeaderSubfolder HeaderFormat = "subfolder"
)

// ParseHeaderFormat convertit une chaine en HeaderFormat, erreur si le mode est inconnu
func ParseHeaderFormat(s string) (HeaderFormat, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "regular", "":
		return HeaderRegular, nil
	case "subfolder":
		return HeaderSubfolder, nil
	default:
		return "", goerr.New("format d'en-tête inconnu (subfolder ou regular)", goerr.V("mode", s))
	}
}

func (h HeaderFormat) String() string {
	return string(h)
}

// ExtractorKind : outil utilisé pour décompresser l'archive
type ExtractorKind string

const (
	ExtractorUnzip   ExtractorKind = "unzip"
	ExtractorBuiltin ExtractorKind = "builtin"
)

func ParseExtractorKind(s string) (ExtractorKind, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "unzip", "":
		return ExtractorUnzip, nil
	case "builtin":
		return ExtractorBuiltin, nil
	default:
		return "", goerr.New("extracteur inconnu (unzip ou builtin)", goerr.V("extractor", s))
	}
}

func (k ExtractorKind) String() string {
	return string(k)
}
