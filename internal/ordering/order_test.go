package ordering

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/patrickprogramme/srtscribe/internal/config"
	"github.com/patrickprogramme/srtscribe/internal/env"
	"github.com/patrickprogramme/srtscribe/pkg/model"
)

func names(entries []model.FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func entriesOf(dir string, files ...string) []model.FileEntry {
	out := make([]model.FileEntry, 0, len(files))
	for _, f := range files {
		out = append(out, model.FileEntry{Dir: dir, Name: f})
	}
	return out
}

func TestSortKey(t *testing.T) {
	tests := []struct {
		name string
		file string
		want int
	}{
		{"numeric", "Mod-10-en.srt", 10},
		{"leading zero", "Intro-02-en.srt", 2},
		{"not a number", "Mod-x-en.srt", SentinelKey},
		{"missing segment", "Intro.srt", SentinelKey},
		{"number with extension", "Mod-3.srt", SentinelKey},
		{"negative", "Mod--1-en.srt", SentinelKey},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, SortKey(tc.file, "-", 1), tc.want)
		})
	}
}

func TestOrderNumeric(t *testing.T) {
	in := entriesOf("/tmp/x", "Mod-10-en.srt", "Mod-2-en.srt", "Mod-x-en.srt")
	got := Order(env.New(config.Default(), nil), in)

	gt.Equal(t, names(got), []string{"Mod-2-en.srt", "Mod-10-en.srt", "Mod-x-en.srt"})
	// l'entrée n'est pas modifiée
	gt.Equal(t, names(in), []string{"Mod-10-en.srt", "Mod-2-en.srt", "Mod-x-en.srt"})
}

func TestOrderIsStable(t *testing.T) {
	in := entriesOf("/tmp/x",
		"zeta.srt",
		"A-3-en.srt",
		"alpha.srt",
		"B-1-en.srt",
		"C-3-en.srt",
		"Mod-y-en.srt",
	)
	got := Order(&env.Env{}, in)

	gt.Equal(t, names(got), []string{
		"B-1-en.srt",
		"A-3-en.srt",
		"C-3-en.srt",
		"zeta.srt",
		"alpha.srt",
		"Mod-y-en.srt",
	})

	// clés non décroissantes
	for i := 1; i < len(got); i++ {
		prev := SortKey(got[i-1].Name, "-", 1)
		cur := SortKey(got[i].Name, "-", 1)
		gt.Equal(t, prev <= cur, true)
	}
}

func TestOrderUsesConfiguredKey(t *testing.T) {
	cfg := config.Default()
	cfg.Sort.Index = 0
	cfg.Sort.Delimiter = "_"

	got := Order(env.New(cfg, nil), entriesOf("/d", "10_b.srt", "9_a.srt", "x_c.srt"))
	gt.Equal(t, names(got), []string{"9_a.srt", "10_b.srt", "x_c.srt"})
}

func TestOrderEmpty(t *testing.T) {
	gt.A(t, Order(&env.Env{}, nil)).Length(0)
}
