package app

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/patrickprogramme/srtscribe/internal/archive"
	"github.com/patrickprogramme/srtscribe/internal/config"
	"github.com/patrickprogramme/srtscribe/internal/prereq"
)

// srt construit un fichier .srt, une réplique par élément
func srt(captions ...string) string {
	var b strings.Builder
	for i, c := range captions {
		fmt.Fprintf(&b, "%d\n00:00:%02d,000 --> 00:00:%02d,500\n%s\n\n", i+1, i, i, c)
	}
	return b.String()
}

func buildArchive(t *testing.T, files map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "course.zip")
	f, err := os.Create(p)
	gt.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		gt.NoError(t, err)
		_, err = io.WriteString(w, content)
		gt.NoError(t, err)
	}
	gt.NoError(t, zw.Close())
	gt.NoError(t, f.Close())
	return p
}

func courseArchive(t *testing.T) string {
	return buildArchive(t, map[string]string{
		"Mod-10-lang_en.srt":            srt("ten"),
		"Intro-01-lang_en.srt":          srt("Hello", "world"),
		"Intro-01-lang_fr.srt":          srt("Bonjour"),
		"Module 2/Mod-02-lang_en.srt":   srt("two"),
		"Module 2/notes.txt":            "not a subtitle",
		"Module 2/Extra-xx-lang_en.srt": srt("last"),
	})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func allPresent() *prereq.Checker {
	return &prereq.Checker{LookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil }}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.TempDir = filepath.Join(t.TempDir(), "scratch")
	return cfg
}

func TestRunWritesTranscript(t *testing.T) {
	cfg := testConfig(t)
	out := filepath.Join(t.TempDir(), "transcript.txt")
	flags := &CLIFlags{FileIn: courseArchive(t), FileOut: out, Language: "en"}

	a := New(cfg, flags, quietLogger(),
		WithExtractor(archive.Builtin{}),
		WithChecker(allPresent()),
	)
	gt.NoError(t, a.Run(context.Background()))

	got, err := os.ReadFile(out)
	gt.NoError(t, err)
	want := "\n\nIntro - 01\n\nHello world " +
		"\n\nMod - 02\n\ntwo " +
		"\n\nMod - 10\n\nten " +
		"\n\nExtra - xx\n\nlast "
	gt.Equal(t, string(got), want)

	// répertoire temporaire et verrou supprimés
	_, err = os.Stat(cfg.TempDir)
	gt.Equal(t, os.IsNotExist(err), true)
	_, err = os.Stat(cfg.TempDir + ".lock")
	gt.Equal(t, os.IsNotExist(err), true)
}

func TestRunSubfolderHeaders(t *testing.T) {
	cfg := testConfig(t)
	out := filepath.Join(t.TempDir(), "transcript.txt")
	archivePath := buildArchive(t, map[string]string{
		"Module 1/Mod-01-lang_en.srt": srt("one"),
		"Module 1/Mod-02-lang_en.srt": srt("two"),
	})
	flags := &CLIFlags{FileIn: archivePath, FileOut: out, Language: "en", HeaderFormat: "subfolder"}

	gt.NoError(t, New(cfg, flags, quietLogger(),
		WithExtractor(archive.Builtin{}),
		WithChecker(allPresent()),
	).Run(context.Background()))

	got, err := os.ReadFile(out)
	gt.NoError(t, err)
	gt.Equal(t, string(got),
		"\n\nModule 1\n\n\n\nModule 1 : Mod-01-lang_en\n\none "+
			"\n\nModule 1 : Mod-02-lang_en\n\ntwo ")
}

func TestRunDefaultOutputName(t *testing.T) {
	cfg := testConfig(t)
	archivePath := courseArchive(t)
	flags := &CLIFlags{FileIn: archivePath, Language: "fr"}

	gt.NoError(t, New(cfg, flags, quietLogger(),
		WithExtractor(archive.Builtin{}),
		WithChecker(allPresent()),
	).Run(context.Background()))

	got, err := os.ReadFile(filepath.Join(filepath.Dir(archivePath), "course.txt"))
	gt.NoError(t, err)
	gt.Equal(t, string(got), "\n\nIntro - 01\n\nBonjour ")
}

func TestRunNoMatchWritesEmptyFile(t *testing.T) {
	cfg := testConfig(t)
	out := filepath.Join(t.TempDir(), "transcript.txt")
	flags := &CLIFlags{FileIn: courseArchive(t), FileOut: out, Language: "de"}

	gt.NoError(t, New(cfg, flags, quietLogger(),
		WithExtractor(archive.Builtin{}),
		WithChecker(allPresent()),
	).Run(context.Background()))

	got, err := os.ReadFile(out)
	gt.NoError(t, err)
	gt.Equal(t, string(got), "")
}

func TestRunEmptyArchiveWritesEmptyFile(t *testing.T) {
	cfg := testConfig(t)
	out := filepath.Join(t.TempDir(), "transcript.txt")
	gt.NoError(t, os.WriteFile(out, []byte("previous run"), 0o644))
	flags := &CLIFlags{FileIn: buildArchive(t, map[string]string{}), FileOut: out, Language: "en"}

	gt.NoError(t, New(cfg, flags, quietLogger(),
		WithExtractor(archive.Builtin{}),
		WithChecker(allPresent()),
	).Run(context.Background()))

	info, err := os.Stat(out)
	gt.NoError(t, err)
	gt.Equal(t, info.Size(), int64(0))

	_, err = os.Stat(cfg.TempDir)
	gt.Equal(t, os.IsNotExist(err), true)
}

func TestRunLanguageSegmentNotInHeader(t *testing.T) {
	cfg := testConfig(t)
	out := filepath.Join(t.TempDir(), "transcript.txt")
	archivePath := buildArchive(t, map[string]string{
		"Intro-02-en.srt": srt("Hello", "world"),
		"Intro-02-fr.srt": srt("Bonjour"),
	})
	flags := &CLIFlags{FileIn: archivePath, FileOut: out, Language: "en"}

	gt.NoError(t, New(cfg, flags, quietLogger(),
		WithExtractor(archive.Builtin{}),
		WithChecker(allPresent()),
	).Run(context.Background()))

	got, err := os.ReadFile(out)
	gt.NoError(t, err)
	gt.Equal(t, string(got), "\n\nIntro - 02\n\nHello world ")
}

func TestRunDryRun(t *testing.T) {
	cfg := testConfig(t)
	out := filepath.Join(t.TempDir(), "transcript.txt")
	flags := &CLIFlags{FileIn: courseArchive(t), FileOut: out, Language: "en", DryRun: true}

	var buf bytes.Buffer
	gt.NoError(t, New(cfg, flags, quietLogger(),
		WithExtractor(archive.Builtin{}),
		WithChecker(allPresent()),
		WithOutput(&buf),
	).Run(context.Background()))

	_, err := os.Stat(out)
	gt.Equal(t, os.IsNotExist(err), true)

	table := buf.String()
	intro := strings.Index(table, "Intro-01-lang_en.srt")
	mod10 := strings.Index(table, "Mod-10-lang_en.srt")
	gt.Equal(t, intro >= 0, true)
	gt.Equal(t, mod10 > intro, true)
	gt.Equal(t, strings.Contains(table, "Intro-01-lang_fr.srt"), false)
	gt.Equal(t, strings.Contains(table, "9999"), true)
}

func TestRunMissingPrerequisite(t *testing.T) {
	cfg := testConfig(t)
	cfg.Prerequisites = []string{"unzip"}
	flags := &CLIFlags{FileIn: courseArchive(t), FileOut: filepath.Join(t.TempDir(), "t.txt")}

	missing := &prereq.Checker{LookPath: func(string) (string, error) { return "", errors.New("not found") }}
	err := New(cfg, flags, quietLogger(), WithChecker(missing)).Run(context.Background())
	gt.Equal(t, errors.Is(err, prereq.ErrPrerequisiteMissing), true)

	// aucune I/O avant la vérification
	_, statErr := os.Stat(cfg.TempDir)
	gt.Equal(t, os.IsNotExist(statErr), true)
}

func TestRunMissingArchive(t *testing.T) {
	cfg := testConfig(t)
	err := New(cfg, &CLIFlags{}, quietLogger(), WithChecker(allPresent())).Run(context.Background())
	gt.Equal(t, errors.Is(err, config.ErrMissingArchive), true)
}

func TestRunInvalidCriteria(t *testing.T) {
	cfg := testConfig(t)
	cfg.CriteriaFxns = []string{"is_shiny"}
	cfg.CriteriaArgs = []config.CriterionArgs{{Extractor: "extractor", Match: "x", Index: 0, Delim: "-"}}
	flags := &CLIFlags{FileIn: courseArchive(t)}

	err := New(cfg, flags, quietLogger(), WithChecker(allPresent())).Run(context.Background())
	gt.Error(t, err)
	_, statErr := os.Stat(cfg.TempDir)
	gt.Equal(t, os.IsNotExist(statErr), true)
}

func TestRunExtractFailureCleansScratch(t *testing.T) {
	cfg := testConfig(t)
	broken := filepath.Join(t.TempDir(), "broken.zip")
	gt.NoError(t, os.WriteFile(broken, []byte("not a zip"), 0o644))
	flags := &CLIFlags{FileIn: broken, FileOut: filepath.Join(t.TempDir(), "t.txt")}

	err := New(cfg, flags, quietLogger(),
		WithExtractor(archive.Builtin{}),
		WithChecker(allPresent()),
	).Run(context.Background())
	gt.Equal(t, errors.Is(err, archive.ErrExtractFailed), true)

	_, statErr := os.Stat(cfg.TempDir)
	gt.Equal(t, os.IsNotExist(statErr), true)
}
