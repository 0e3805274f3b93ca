package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestParseLevel(t *testing.T) {
	gt.Equal(t, ParseLevel("DEBUG"), slog.LevelDebug)
	gt.Equal(t, ParseLevel(" warning "), slog.LevelWarn)
	gt.Equal(t, ParseLevel("error"), slog.LevelError)
	gt.Equal(t, ParseLevel("verbose"), slog.LevelInfo)
	gt.Equal(t, ParseLevel(""), slog.LevelInfo)
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := (&Options{Level: "warn", JSON: true}).NewWithWriter(&buf)

	log.Info("hidden")
	log.Warn("shown", slog.String("file", "a.srt"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	gt.A(t, lines).Length(1)

	var rec map[string]any
	gt.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	gt.Equal(t, rec["msg"], any("shown"))
	gt.Equal(t, rec["file"], any("a.srt"))
}

func TestNewWithWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	log := (&Options{Level: "debug"}).NewWithWriter(&buf)

	log.Debug("scratch directory ready", slog.String("dir", "/tmp/x"))
	gt.Equal(t, strings.Contains(buf.String(), "scratch directory ready"), true)
	// pas de terminal : pas de séquences de couleur
	gt.Equal(t, strings.Contains(buf.String(), "\x1b["), false)
}
