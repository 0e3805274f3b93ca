package fsutil

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// longueur max d'un nom de transcript, extension comprise
const maxNameLen = 200

const fallbackStem = "transcript"

// caractères refusés par au moins un système de fichiers courant
var invalidFileRunes = regexp.MustCompile(`[<>:"|?*\\\x00-\x1F]`)

var multiSpace = regexp.MustCompile(`\s+`)

// TranscriptNameFor dérive le nom du transcript à partir de l'archive :
// "/x/Cours Go-en.zip" -> "/x/Cours Go-en.txt".
func TranscriptNameFor(archivePath string) string {
	base := filepath.Base(archivePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(archivePath), SanitizeStem(stem)+".txt")
}

// SanitizeStem rend utilisable un nom de base issu d'une archive : caractères
// interdits remplacés par "_", espaces réduits, points et espaces terminaux
// retirés, longueur bornée. Un résultat vide donne "transcript".
func SanitizeStem(stem string) string {
	clean := invalidFileRunes.ReplaceAllString(stem, "_")
	clean = multiSpace.ReplaceAllString(clean, " ")
	clean = strings.TrimRight(strings.TrimSpace(clean), ". ")

	limit := maxNameLen - len(".txt")
	for len(clean) > limit {
		_, size := utf8.DecodeLastRuneInString(clean)
		clean = clean[:len(clean)-size]
	}

	if clean == "" {
		return fallbackStem
	}
	return clean
}
