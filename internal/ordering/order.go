// Package ordering trie les fichiers sélectionnés selon un segment numérique
// de leur nom.
package ordering

import (
	"cmp"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/patrickprogramme/srtscribe/internal/env"
	"github.com/patrickprogramme/srtscribe/pkg/model"
)

// SentinelKey : clé des noms sans segment numérique, triés en dernier
const SentinelKey = 9999

// SortKey découpe name sur delim et lit le segment index comme un entier.
// Segment absent ou non numérique -> SentinelKey.
func SortKey(name, delim string, index int) int {
	if delim == "" || index < 0 {
		return SentinelKey
	}
	parts := strings.Split(name, delim)
	if index >= len(parts) {
		return SentinelKey
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[index]))
	if err != nil {
		return SentinelKey
	}
	return n
}

// Order retourne une nouvelle slice triée par clé croissante.
// Tri stable : les ex aequo (dont les clés sentinelles) gardent leur ordre d'origine.
func Order(e *env.Env, entries []model.FileEntry) []model.FileEntry {
	cfg := e.Config()
	delim, index := cfg.Sort.Delimiter, cfg.Sort.Index

	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b model.FileEntry) int {
		return cmp.Compare(SortKey(a.Name, delim, index), SortKey(b.Name, delim, index))
	})

	log := e.Logger()
	for i, entry := range out {
		log.Debug("ordered",
			slog.Int("position", i),
			slog.String("file", entry.Name),
			slog.Int("key", SortKey(entry.Name, delim, index)),
		)
	}
	return out
}
