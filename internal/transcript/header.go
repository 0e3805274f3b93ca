package transcript

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/pkg/model"
)

var ErrUnknownHeaderFormat = goerr.New("format d'en-tête invalide : subfolder ou regular")

// langMarker : un segment qui le contient n'entre jamais dans l'en-tête
const langMarker = "lang"

// RegularHeader construit l'en-tête d'un fichier à partir de son nom :
// segments séparés par "-", joints par " - ", arrêt au premier segment
// portant la langue (contient "lang", ou vaut lang une fois l'extension
// retirée). Le premier segment est toujours gardé. Encadré de lignes vides.
//
//	"Intro-02-lang_en.srt", ""   -> "\n\nIntro - 02\n\n"
//	"Intro-02-en.srt",      "en" -> "\n\nIntro - 02\n\n"
func RegularHeader(name, lang string) string {
	parts := strings.Split(name, "-")

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if isLanguageSegment(p, lang) {
			break
		}
		b.WriteString(" - ")
		b.WriteString(p)
	}
	b.WriteString("\n\n")
	return b.String()
}

// isLanguageSegment : "lang_en", "en.srt", "EN", "en_US.srt" pour lang "en"
func isLanguageSegment(seg, lang string) bool {
	if strings.Contains(seg, langMarker) {
		return true
	}
	if lang == "" {
		return false
	}
	stem := strings.TrimSuffix(seg, filepath.Ext(seg))
	return strings.EqualFold(stem, lang) ||
		strings.HasPrefix(strings.ToLower(stem), strings.ToLower(lang)+"_")
}

// Headers produit l'en-tête à écrire avant le texte d'un fichier.
// Une implémentation peut garder un état sur la durée d'un run.
type Headers interface {
	Header(entry model.FileEntry) string
}

// NewHeaders retourne la stratégie correspondant au mode ("regular", "subfolder").
// lang est la langue sélectionnée (lang_abbr), retirée des en-têtes regular.
func NewHeaders(mode, lang string) (Headers, error) {
	format, err := model.ParseHeaderFormat(mode)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrUnknownHeaderFormat, err), "résolution du format d'en-tête")
	}
	switch format {
	case model.HeaderSubfolder:
		return &subfolderHeaders{seen: make(map[string]struct{})}, nil
	default:
		return regularHeaders{lang: strings.TrimSpace(lang)}, nil
	}
}

type regularHeaders struct {
	lang string
}

func (h regularHeaders) Header(entry model.FileEntry) string {
	return RegularHeader(entry.Name, h.lang)
}

// subfolderHeaders : titre majeur (nom du dossier) à la première rencontre du
// dossier pendant le run, puis titre mineur "<dossier> : <fichier sans extension>".
type subfolderHeaders struct {
	seen map[string]struct{}
}

func (s *subfolderHeaders) Header(entry model.FileEntry) string {
	dir := filepath.Base(entry.Dir)

	var b strings.Builder
	if _, ok := s.seen[entry.Dir]; !ok {
		s.seen[entry.Dir] = struct{}{}
		b.WriteString("\n\n")
		b.WriteString(dir)
		b.WriteString("\n\n")
	}
	b.WriteString("\n\n")
	b.WriteString(dir + " : " + entry.Stem())
	b.WriteString("\n\n")
	return b.String()
}
