package archive

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Builtin décompresse dans le processus avec archive/zip : aucun
// programme externe requis.
type Builtin struct{}

func (Builtin) Name() string { return "builtin" }

func (Builtin) Extract(ctx context.Context, archivePath, destDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return goerr.Wrap(errors.Join(ErrExtractFailed, err), "ouverture de l'archive", goerr.V("archive", archivePath))
	}
	defer zr.Close()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return goerr.Wrap(err, "chemin de destination", goerr.V("dest", destDir))
	}

	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extractFile(f, root); err != nil {
			return goerr.Wrap(err, "décompression", goerr.V("archive", archivePath), goerr.V("entry", f.Name))
		}
	}
	return nil
}

// safeJoin refuse les entrées qui sortent de root ("../x", chemins absolus).
func safeJoin(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", goerr.Wrap(ErrUnsafePath, "entrée refusée", goerr.V("entry", name))
	}
	return target, nil
}

func extractFile(f *zip.File, root string) error {
	target, err := safeJoin(root, f.Name)
	if err != nil {
		return err
	}

	mode := f.Mode()
	switch {
	case mode.IsDir():
		return os.MkdirAll(target, 0o755)
	case !mode.IsRegular():
		// liens symboliques et fichiers spéciaux ignorés
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
