// Package env porte le contexte explicite d'une exécution : configuration,
// logger et identifiant de run. Il est passé au sélecteur, au tri et à
// l'assembleur ; aucun état global.
package env

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/patrickprogramme/srtscribe/internal/config"
)

type Env struct {
	Cfg   *config.Config
	Log   *slog.Logger
	RunID string
}

// New construit l'Env d'un run. Le logger reçoit l'attribut run_id.
func New(cfg *config.Config, log *slog.Logger) *Env {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.NewString()
	return &Env{
		Cfg:   cfg,
		Log:   log.With(slog.String("run_id", id)),
		RunID: id,
	}
}

// Logger ne retourne jamais nil : un Env vide journalise dans le vide.
func (e *Env) Logger() *slog.Logger {
	if e == nil || e.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Log
}

// Config retourne la config de l'Env, ou la config par défaut.
func (e *Env) Config() *config.Config {
	if e == nil || e.Cfg == nil {
		return config.Default()
	}
	return e.Cfg
}
