package logx

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
)

func capture(t *testing.T, l Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetMinLevel(l)
	t.Cleanup(func() {
		SetOutput(io.Discard)
		SetMinLevel(LevelWarn)
		SetVerbose(false)
		mu.Lock()
		secrets = nil
		mu.Unlock()
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, LevelInfo)
	Debugf("hidden %d", 1)
	Infof("shown %d", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var e entry
	if err := json.Unmarshal([]byte(lines[0]), &e); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if e.Level != "info" || e.Msg != "shown 2" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestRedactsSecretsInMessageAndFields(t *testing.T) {
	buf := capture(t, LevelDebug)
	RegisterSecret("pk.abc123")
	Info("token pk.abc123 in use", Fields{"token": "pk.abc123", "n": 3})

	got := buf.String()
	if strings.Contains(got, "pk.abc123") {
		t.Fatalf("secret leaked: %s", got)
	}
	if !strings.Contains(got, "[REDACTED]") || !strings.Contains(got, `"n":3`) {
		t.Fatalf("unexpected output: %s", got)
	}
}

func TestTruncatesUnlessVerbose(t *testing.T) {
	buf := capture(t, LevelDebug)
	long := strings.Repeat("x", 5000)
	Warnf("%s", long)
	if !strings.Contains(buf.String(), "[truncated]") {
		t.Fatalf("expected truncation")
	}

	buf.Reset()
	SetVerbose(true)
	Warnf("%s", long)
	if strings.Contains(buf.String(), "[truncated]") {
		t.Fatalf("verbose output should not be truncated")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{"debug": LevelDebug, "": LevelInfo, "WARNING": LevelWarn, "error": LevelError}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}
