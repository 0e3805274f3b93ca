package env

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/patrickprogramme/srtscribe/internal/config"
)

func TestNewAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	cfg := config.Default()
	e := New(cfg, log)
	gt.Equal(t, e.Config(), cfg)
	gt.Equal(t, e.RunID != "", true)

	e.Logger().Info("hello")
	gt.Equal(t, strings.Contains(buf.String(), "run_id="+e.RunID), true)

	// un identifiant par run
	gt.Equal(t, New(cfg, log).RunID != e.RunID, true)
}

func TestNilEnvFallbacks(t *testing.T) {
	var e *Env
	gt.V(t, e.Logger()).NotNil()
	gt.Equal(t, e.Config().HeaderFormat, "regular")

	empty := &Env{}
	empty.Logger().Info("discarded")
	gt.Equal(t, empty.Config().Sort.Index, config.DefaultSortIndex)
}
