package config

import (
	"os"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/pkg/model"
)

var (
	ErrMissingArchive  = goerr.New("aucune archive de sous-titres fournie (zipped_sub_file / --filein)")
	ErrInvalidCriteria = goerr.New("criteria_fxns et criteria_args doivent avoir la même longueur")
)

// Validate vérifie la cohérence de la config avant le lancement du pipeline.
// Retourne warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) Validate() (warnings []string, err error) {
	if c == nil {
		return nil, goerr.New("config nil")
	}

	if c.ZippedSubFile == "" {
		return warnings, ErrMissingArchive
	}
	info, serr := os.Stat(c.ZippedSubFile)
	if serr != nil {
		return warnings, goerr.Wrap(serr, "archive introuvable", goerr.V("path", c.ZippedSubFile))
	}
	if info.IsDir() {
		return warnings, goerr.New("l'archive est un répertoire", goerr.V("path", c.ZippedSubFile))
	}

	if len(c.CriteriaFxns) != len(c.CriteriaArgs) {
		return warnings, goerr.Wrap(ErrInvalidCriteria, "config invalide",
			goerr.V("criteria_fxns", len(c.CriteriaFxns)),
			goerr.V("criteria_args", len(c.CriteriaArgs)))
	}

	if _, perr := model.ParseHeaderFormat(c.HeaderFormat); perr != nil {
		return warnings, goerr.Wrap(perr, "header_format invalide")
	}
	kind, perr := model.ParseExtractorKind(c.Extractor)
	if perr != nil {
		return warnings, goerr.Wrap(perr, "extractor invalide")
	}

	if c.TempDir == "" {
		warnings = append(warnings, "temp_dir vide : un répertoire temporaire système sera utilisé")
	}
	if kind == model.ExtractorUnzip && !slices.Contains(c.Prerequisites, "unzip") {
		warnings = append(warnings, "extractor unzip sans 'unzip' dans prerequisites")
	}
	if len(c.CriteriaFxns) == 0 {
		warnings = append(warnings, "aucun critère de sélection : tous les fichiers de l'archive seront utilisés")
	}

	return warnings, nil
}
