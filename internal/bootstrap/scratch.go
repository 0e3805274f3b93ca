package bootstrap

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickprogramme/srtscribe/internal/fsutil"
)

var (
	ErrScratchInUse    = goerr.New("répertoire temporaire utilisé par une autre exécution")
	ErrScratchNotEmpty = goerr.New("le répertoire temporaire existe et n'est pas vide")
)

// Scratch est le répertoire de décompression d'une exécution.
// Il est verrouillé (fichier <dir>.lock) pendant toute la durée du run.
type Scratch struct {
	Dir  string
	Keep bool

	lock *flock.Flock
	log  *slog.Logger
}

// PrepareScratch crée (ou réutilise s'il est vide) le répertoire dir.
// dir vide -> répertoire temporaire système.
// Un répertoire existant non vide est refusé : Cleanup le supprimerait.
func PrepareScratch(dir string, keep bool, log *slog.Logger) (*Scratch, error) {
	if log == nil {
		log = slog.Default()
	}

	if dir == "" {
		d, err := os.MkdirTemp("", "srtscribe-*")
		if err != nil {
			return nil, goerr.Wrap(err, "création du répertoire temporaire impossible")
		}
		dir = d
	} else if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return nil, goerr.Wrap(err, "mkdir parent du répertoire temporaire", goerr.V("dir", dir))
	}

	lock := flock.New(dir + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, goerr.Wrap(err, "verrouillage du répertoire temporaire", goerr.V("lock", lock.Path()))
	}
	if !ok {
		return nil, goerr.Wrap(ErrScratchInUse, "verrou déjà pris", goerr.V("lock", lock.Path()))
	}

	s := &Scratch{Dir: dir, Keep: keep, lock: lock, log: log}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.release()
			return nil, goerr.Wrap(err, "création du répertoire temporaire", goerr.V("dir", dir))
		}
	} else {
		empty, err := fsutil.IsDirEmpty(dir)
		if err != nil {
			s.release()
			return nil, goerr.Wrap(err, "vérification du répertoire temporaire", goerr.V("dir", dir))
		}
		if !empty {
			s.release()
			return nil, goerr.Wrap(ErrScratchNotEmpty, "refus d'utiliser le répertoire", goerr.V("dir", dir))
		}
	}

	log.Debug("scratch directory ready", slog.String("dir", dir), slog.String("lock", lock.Path()))
	return s, nil
}

// Cleanup supprime récursivement le répertoire (sauf Keep) et libère le verrou.
func (s *Scratch) Cleanup() error {
	if s == nil {
		return nil
	}
	defer s.release()

	if s.Keep {
		s.log.Info("keeping scratch directory", slog.String("dir", s.Dir))
		return nil
	}
	if err := os.RemoveAll(s.Dir); err != nil {
		return goerr.Wrap(err, "suppression du répertoire temporaire", goerr.V("dir", s.Dir))
	}
	s.log.Debug("scratch directory removed", slog.String("dir", s.Dir))
	return nil
}

func (s *Scratch) release() {
	if s.lock == nil {
		return
	}
	_ = s.lock.Unlock()
	_ = os.Remove(s.lock.Path())
	s.lock = nil
}
