// Package prereq vérifie la présence des programmes externes avant tout traitement.
package prereq

import (
	"os/exec"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var ErrPrerequisiteMissing = goerr.New("programme requis introuvable : vérifier qu'il est installé et dans le $PATH")

// Status : disponibilité d'un programme
type Status struct {
	Name      string
	Path      string
	Available bool
	Detail    string
}

// LookPathFunc permet de remplacer exec.LookPath dans les tests.
type LookPathFunc func(file string) (string, error)

// Checker résout les programmes dans le PATH.
type Checker struct {
	LookPath LookPathFunc
}

// NewChecker : Checker basé sur exec.LookPath
func NewChecker() *Checker {
	return &Checker{LookPath: exec.LookPath}
}

// Check évalue chaque programme et retourne son statut, dans l'ordre donné.
func (c *Checker) Check(names []string) []Status {
	out := make([]Status, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		st := Status{Name: name}
		if name == "" {
			st.Detail = "nom de programme vide"
			out = append(out, st)
			continue
		}
		p, err := c.LookPath(name)
		if err != nil {
			st.Detail = err.Error()
			out = append(out, st)
			continue
		}
		st.Path = p
		st.Available = true
		out = append(out, st)
	}
	return out
}

// Require échoue sur le premier programme absent.
func (c *Checker) Require(names []string) error {
	for _, st := range c.Check(names) {
		if !st.Available {
			return goerr.Wrap(ErrPrerequisiteMissing, "prérequis manquant",
				goerr.V("program", st.Name), goerr.V("detail", st.Detail))
		}
	}
	return nil
}
