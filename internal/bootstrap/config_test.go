package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/m-mizutani/gt"
)

func TestEnsureConfigPresent(t *testing.T) {
	fsys := fstest.MapFS{
		"example.yaml": &fstest.MapFile{Data: []byte("config_version: 2\n")},
	}
	dst := filepath.Join(t.TempDir(), "bin", "srtscribe.yaml")

	gt.NoError(t, EnsureConfigPresent(dst, fsys, "example.yaml"))
	got, err := os.ReadFile(dst)
	gt.NoError(t, err)
	gt.Equal(t, string(got), "config_version: 2\n")

	// un fichier existant n'est jamais remplacé
	gt.NoError(t, os.WriteFile(dst, []byte("lang_abbr: fr\n"), 0o644))
	gt.NoError(t, EnsureConfigPresent(dst, fsys, "example.yaml"))
	got, err = os.ReadFile(dst)
	gt.NoError(t, err)
	gt.Equal(t, string(got), "lang_abbr: fr\n")
}

func TestEnsureConfigPresentMissingAsset(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "srtscribe.yaml")
	gt.Error(t, EnsureConfigPresent(dst, fstest.MapFS{}, "example.yaml"))

	_, err := os.Stat(dst)
	gt.Equal(t, os.IsNotExist(err), true)
}

func TestEnsureConfigPresentParentIsFile(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	gt.NoError(t, os.WriteFile(parent, []byte("x"), 0o644))

	err := EnsureConfigPresent(filepath.Join(parent, "srtscribe.yaml"), fstest.MapFS{}, "example.yaml")
	gt.Error(t, err)
}
