package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storymap/internal/infra/logx"
)

func resetFlags(t *testing.T) {
	t.Helper()
	logFile, logLevel, verbose = "", "info", false
	t.Cleanup(func() {
		logx.SetOutput(io.Discard)
		logx.SetMinLevel(logx.LevelWarn)
		logFile, logLevel, verbose = "", "info", false
	})
}

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	resetFlags(t)
	t.Setenv("DEBUG", "")
	closeLog, err := setupLogging()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	closeLog()
}

func TestSetupLoggingToFile(t *testing.T) {
	resetFlags(t)
	logFile = filepath.Join(t.TempDir(), "out.log")
	logLevel = "warn"

	closeLog, err := setupLogging()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logx.Infof("dropped")
	logx.Warnf("kept")
	closeLog()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Fatalf("unexpected log content %q", data)
	}
}

func TestSetupLoggingDebugEnv(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())
	t.Setenv("DEBUG", "1")

	closeLog, err := setupLogging()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logx.Debugf("hello")
	closeLog()

	if logLevel != "debug" {
		t.Fatalf("expected debug level, got %q", logLevel)
	}
	data, err := os.ReadFile("storymap.log")
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected debug line, got %q", data)
	}
}

func TestSetupLoggingRejectsBadLevel(t *testing.T) {
	resetFlags(t)
	logFile = filepath.Join(t.TempDir(), "out.log")
	logLevel = "loud"
	if _, err := setupLogging(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
