package bootstrap

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/internal/fsutil"
)

// EnsureConfigPresent copie un fichier embarqué (assetPath dans fsys) vers dstPath
// si dstPath n'existe pas encore.
// - dstPath : chemin complet sur disque (ex: binDir/srtscribe.yaml)
// - fsys : embed.FS (ou autre fs.FS) contenant l'asset
// - assetPath : chemin dans fsys vers l'asset (ex: "srtscribe.example.yaml")
// Comportement : idempotent, ne remplace jamais un fichier existant.
func EnsureConfigPresent(dstPath string, fsys fs.FS, assetPath string) error {
	parent := filepath.Dir(dstPath)
	if parent == "" {
		parent = "."
	}
	if st, err := os.Stat(parent); err != nil {
		if !os.IsNotExist(err) {
			return goerr.Wrap(err, "échec test parent", goerr.V("parent", parent))
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return goerr.Wrap(err, "échec création répertoire parent", goerr.V("parent", parent))
		}
	} else if !st.IsDir() {
		return goerr.New("le parent existe mais n'est pas un répertoire", goerr.V("parent", parent))
	}

	// si le fichier existe déjà -> ne rien faire
	if _, err := os.Stat(dstPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return goerr.Wrap(err, "échec stat fichier cible", goerr.V("path", dstPath))
	}

	data, err := fs.ReadFile(fsys, filepath.ToSlash(assetPath))
	if err != nil {
		return goerr.Wrap(err, "lecture asset embarqué", goerr.V("asset", assetPath))
	}

	if err := fsutil.WriteFileAtomic(dstPath, data, 0o644); err != nil {
		return goerr.Wrap(err, "échec écriture config", goerr.V("path", dstPath))
	}

	slog.Info("created default config", slog.String("path", dstPath))
	return nil
}
