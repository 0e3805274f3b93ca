package selection

import (
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/internal/config"
)

var (
	ErrUnknownCriterion = goerr.New("critère de sélection inconnu")
	ErrUnknownExtractor = goerr.New("extracteur de segment inconnu")
	ErrInvalidCriteria  = goerr.New("critères de sélection invalides")
)

// Kind : variante du prédicat appliqué au nom de fichier
type Kind int

const (
	// SegmentContains : le segment extrait contient Match
	SegmentContains Kind = iota
	// LanguageFile : le 2e segment séparé par "-" contient Match
	LanguageFile
	// HasSuffix : le segment extrait se termine par Match (casse ignorée)
	HasSuffix
)

func (k Kind) String() string {
	switch k {
	case SegmentContains:
		return "segment_contains"
	case LanguageFile:
		return "is_language_file"
	case HasSuffix:
		return "has_suffix"
	default:
		return "unknown"
	}
}

// ExtractFunc extrait un segment d'un nom de fichier
type ExtractFunc func(word string, index int, delim string) string

// table de dispatch : noms utilisés dans criteria_fxns
var kindsByName = map[string]Kind{
	"is_correct_language": SegmentContains,
	"segment_contains":    SegmentContains,
	"is_language_file":    LanguageFile,
	"has_suffix":          HasSuffix,
}

// table de dispatch : premier élément de criteria_args
var extractorsByName = map[string]ExtractFunc{
	"extractor": Segment,
	"segment":   Segment,
	"whole":     Whole,
	"stem":      StemSegment,
}

// Segment découpe word sur delim et retourne le segment d'index donné.
// Un index hors limites désigne le dernier segment, un index négatif
// compte depuis la fin.
func Segment(word string, index int, delim string) string {
	if delim == "" {
		return word
	}
	parts := strings.Split(word, delim)
	if index < 0 {
		index += len(parts)
		if index < 0 {
			index = 0
		}
	}
	if index >= len(parts) {
		index = len(parts) - 1
	}
	return parts[index]
}

// Whole ignore index et delim : le nom complet
func Whole(word string, _ int, _ string) string {
	return word
}

// StemSegment : comme Segment, sur le nom sans extension
func StemSegment(word string, index int, delim string) string {
	return Segment(strings.TrimSuffix(word, filepath.Ext(word)), index, delim)
}

// Criterion est un prédicat nommé, paramétré par (extracteur, motif, index, délimiteur).
type Criterion struct {
	Name      string
	Kind      Kind
	Extractor string
	Match     string
	Index     int
	Delim     string

	extract ExtractFunc
}

// Matches évalue le critère sur un nom de fichier.
// Recherche de sous-chaine : un motif vide est toujours trouvé.
func (c Criterion) Matches(name string) bool {
	switch c.Kind {
	case LanguageFile:
		parts := strings.Split(name, "-")
		if len(parts) < 2 {
			return false
		}
		return strings.Contains(parts[1], c.Match)
	case HasSuffix:
		seg := c.segment(name)
		return strings.HasSuffix(strings.ToLower(seg), strings.ToLower(c.Match))
	default:
		return strings.Contains(c.segment(name), c.Match)
	}
}

func (c Criterion) segment(name string) string {
	if c.extract == nil {
		return Segment(name, c.Index, c.Delim)
	}
	return c.extract(name, c.Index, c.Delim)
}

// NewCriterion résout name et args.Extractor dans les tables de dispatch.
func NewCriterion(name string, args config.CriterionArgs) (Criterion, error) {
	kind, ok := kindsByName[strings.TrimSpace(name)]
	if !ok {
		return Criterion{}, goerr.Wrap(ErrUnknownCriterion, "résolution du critère", goerr.V("name", name))
	}
	extractorName := strings.TrimSpace(args.Extractor)
	if extractorName == "" {
		extractorName = "extractor"
	}
	extract, ok := extractorsByName[extractorName]
	if !ok {
		return Criterion{}, goerr.Wrap(ErrUnknownExtractor, "résolution de l'extracteur",
			goerr.V("criterion", name), goerr.V("extractor", args.Extractor))
	}
	return Criterion{
		Name:      name,
		Kind:      kind,
		Extractor: extractorName,
		Match:     args.Match,
		Index:     args.Index,
		Delim:     args.Delim,
		extract:   extract,
	}, nil
}

// BuildCriteria construit la liste des critères à partir des listes parallèles
// criteria_fxns / criteria_args.
func BuildCriteria(names []string, args []config.CriterionArgs) ([]Criterion, error) {
	if len(names) != len(args) {
		return nil, goerr.Wrap(ErrInvalidCriteria, "listes de longueurs différentes",
			goerr.V("criteria_fxns", len(names)), goerr.V("criteria_args", len(args)))
	}
	out := make([]Criterion, 0, len(names))
	for i, name := range names {
		c, err := NewCriterion(name, args[i])
		if err != nil {
			return nil, goerr.Wrap(err, "critère invalide", goerr.V("position", i))
		}
		out = append(out, c)
	}
	return out, nil
}

// CriteriaFromConfig : raccourci qui applique la substitution {lang}.
func CriteriaFromConfig(cfg *config.Config) ([]Criterion, error) {
	return BuildCriteria(cfg.CriteriaFxns, cfg.ResolvedCriteriaArgs())
}

// SelectFile : ET logique sur tous les critères, arrêt au premier échec.
// Aucun critère -> true.
func SelectFile(name string, criteria []Criterion) bool {
	for _, c := range criteria {
		if !c.Matches(name) {
			return false
		}
	}
	return true
}
