package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != log.DebugLevel {
		t.Fatal("DEBUG should parse case-insensitively")
	}
	if ParseLevel("nonsense") != log.InfoLevel {
		t.Fatal("unknown levels fall back to info")
	}
}

func TestNewWriter_FiltersAndPrefixes(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "server", "warn")
	l.Info("hidden")
	l.Warn("shown", "k", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "server") {
		t.Fatalf("warn line missing message or prefix: %q", out)
	}
}
