package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// reset gives each test a fresh global logger.
func reset(t *testing.T) {
	t.Helper()
	ForTestsOnlyResetLogger()
	t.Cleanup(ForTestsOnlyResetLogger)
}

func TestGetLoggerDefaults(t *testing.T) {
	reset(t)

	logger := GetLogger()
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("default logger should record Info")
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("default logger should not record Debug")
	}
}

func TestInitControlsLevelAndOutput(t *testing.T) {
	reset(t)

	var buf bytes.Buffer
	Init(slog.LevelDebug, &buf)

	logger := GetLogger()
	logger.Debug("probe entry")

	if !strings.Contains(buf.String(), "probe entry") {
		t.Error("log entry did not reach the configured output")
	}
}

func TestInitOnlyFirstCallWins(t *testing.T) {
	reset(t)

	var first, second bytes.Buffer
	Init(slog.LevelDebug, &first)
	Init(slog.LevelInfo, &second)

	GetLogger().Debug("probe entry")

	if !strings.Contains(first.String(), "probe entry") {
		t.Error("log entry did not reach the first configured output")
	}
	if second.Len() > 0 {
		t.Error("second Init call should be a no-op")
	}
}

func TestGetLoggerIsStable(t *testing.T) {
	reset(t)

	logger1 := GetLogger()
	logger2 := GetLogger()
	if logger1 != logger2 {
		t.Error("GetLogger should always return the same instance")
	}

	var buf bytes.Buffer
	Init(slog.LevelDebug, &buf)
	if GetLogger() != logger1 {
		t.Error("Init after GetLogger must not swap the instance")
	}
}
