package fsutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// IsDirEmpty renvoie true si le répertoire path ne contient aucune entrée.
func IsDirEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, goerr.New("not a directory", goerr.V("path", path))
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// une seule entrée suffit
	if _, err = f.Readdirnames(1); err == io.EOF {
		return true, nil
	} else if err != nil {
		return false, err
	}
	return false, nil
}

// WriteFileAtomic écrit data dans destPath via un fichier temporaire du même
// répertoire puis os.Rename(tmp -> dest). Crée les répertoires parents si nécessaire.
//
// Utilisé pour la config (création, migration) : jamais de fichier à moitié écrit.
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "mkdir", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return goerr.Wrap(err, "create temp file", goerr.V("dir", dir))
	}
	tmpName := tmp.Name()

	// cleanup si échec (no-op après le rename)
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return goerr.Wrap(err, "write temp file", goerr.V("tmp", tmpName))
	}
	_ = tmp.Sync() // best-effort
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "close temp file", goerr.V("tmp", tmpName))
	}
	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, destPath); err != nil {
		return goerr.Wrap(err, "rename tmp -> dest", goerr.V("dest", destPath))
	}
	return nil
}
