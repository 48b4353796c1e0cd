package logging

import (
	"bytes"
	"log"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestSetup_FiltersByLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	Setup(&buf, slog.LevelWarn)

	slog.Info("hidden")
	slog.Warn("shown", "key", "value")
	log.Print("from std log")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("Expected warning in output, got %q", out)
	}
	if !strings.Contains(out, "from std log") {
		t.Errorf("Expected std log redirected, got %q", out)
	}
}
