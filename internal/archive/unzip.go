package archive

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Unzip appelle le programme externe `unzip`.
type Unzip struct {
	Bin string
}

// NewUnzip : bin vide -> "unzip" cherché dans le PATH
func NewUnzip(bin string) *Unzip {
	if strings.TrimSpace(bin) == "" {
		bin = "unzip"
	}
	return &Unzip{Bin: bin}
}

func (u *Unzip) Name() string { return "unzip" }

// Extract exécute `unzip -o <archive> -d <dest>`.
// Un code de sortie non nul est une erreur de préparation, avec la sortie de l'outil.
func (u *Unzip) Extract(ctx context.Context, archivePath, destDir string) error {
	start := time.Now()

	cmd := exec.CommandContext(ctx, u.Bin, "-o", archivePath, "-d", destDir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return goerr.Wrap(errors.Join(ErrExtractFailed, err), "unzip",
			goerr.V("archive", archivePath),
			goerr.V("dest", destDir),
			goerr.V("output", strings.TrimSpace(string(out))),
			goerr.V("elapsed", time.Since(start).String()),
		)
	}
	return nil
}
