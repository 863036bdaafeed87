package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// resetLogger resets the global logger state for testing.
// Tests that use this must not run in parallel.
func resetLogger() {
	defaultLogger = nil
	once = sync.Once{}
}

// captureWriter is an io.Writer that captures writes for testing.
type captureWriter struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (w *captureWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *captureWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func captureLogger(minLevel Level) *captureWriter {
	resetLogger()
	w := &captureWriter{}
	InitWriter(w, 10)
	SetMinLevel(minLevel)
	return w
}

func TestLogger_NilSafety(t *testing.T) {
	resetLogger()

	Debug(CatUI, "test message", "key", "value")
	Info(CatForm, "test message")
	Warn(CatConfig, "test message")
	Error(CatFixtures, "test message")
	ErrorErr(CatMode, "test message", nil)
	SetEnabled(false)
	SetMinLevel(LevelInfo)
	ClearBuffer()

	require.Nil(t, GetRecentLogs(10))
}

func TestLogger_Init(t *testing.T) {
	resetLogger()
	logPath := filepath.Join(t.TempDir(), "test.log")

	cleanup, err := Init(logPath, 10)
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	defer cleanup()

	require.NotNil(t, defaultLogger)
	require.True(t, defaultLogger.enabled)
}

func TestLogger_Init_InvalidPath(t *testing.T) {
	resetLogger()
	_, err := Init("/nonexistent/path/test.log", 10)
	require.Error(t, err)
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		minLevel Level
		present  []string
		absent   []string
	}{
		{"info", LevelInfo, []string{"info-msg", "warn-msg", "error-msg"}, []string{"debug-msg"}},
		{"warn", LevelWarn, []string{"warn-msg", "error-msg"}, []string{"debug-msg", "info-msg"}},
		{"error", LevelError, []string{"error-msg"}, []string{"debug-msg", "info-msg", "warn-msg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := captureLogger(tt.minLevel)

			Debug(CatUI, "debug-msg")
			Info(CatUI, "info-msg")
			Warn(CatUI, "warn-msg")
			Error(CatUI, "error-msg")

			out := w.String()
			for _, s := range tt.present {
				require.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				require.NotContains(t, out, s)
			}
		})
	}
}

func TestLogger_CategoryOutput(t *testing.T) {
	w := captureLogger(LevelDebug)

	for _, cat := range []Category{CatUI, CatForm, CatFixtures, CatConfig, CatWatcher, CatServer, CatMode} {
		w.buf.Reset()
		Info(cat, "test message")
		require.Contains(t, w.String(), "["+string(cat)+"]")
	}
}

func TestLogger_FieldFormatting(t *testing.T) {
	w := captureLogger(LevelDebug)

	Info(CatUI, "select", "value", "b", "count", 2, "open", false)
	out := w.String()
	require.Contains(t, out, "value=b")
	require.Contains(t, out, "count=2")
	require.Contains(t, out, "open=false")

	w.buf.Reset()
	Info(CatUI, "test", "key1", "value1", "orphan")
	require.Contains(t, w.String(), "key1=value1")
	require.Contains(t, w.String(), "orphan=<missing>")

	w.buf.Reset()
	Info(CatUI, "message only")
	require.True(t, strings.HasSuffix(w.String(), "message only\n"))
}

func TestLogger_SetEnabled_Toggle(t *testing.T) {
	w := captureLogger(LevelDebug)

	Info(CatUI, "enabled1")
	SetEnabled(false)
	Info(CatUI, "disabled")
	SetEnabled(true)
	Info(CatUI, "enabled2")

	out := w.String()
	require.Contains(t, out, "enabled1")
	require.NotContains(t, out, "disabled")
	require.Contains(t, out, "enabled2")
}

func TestLogger_ErrorErr(t *testing.T) {
	w := captureLogger(LevelDebug)

	ErrorErr(CatFixtures, "file not found", os.ErrNotExist, "path", "/test")
	require.Contains(t, w.String(), "error=file does not exist")
	require.Contains(t, w.String(), "path=/test")

	w.buf.Reset()
	ErrorErr(CatFixtures, "operation failed", nil)
	require.Contains(t, w.String(), "error=<nil>")
}

func TestLogger_BufferIntegration_Overflow(t *testing.T) {
	resetLogger()
	InitWriter(nil, 3)

	Info(CatUI, "msg1")
	Info(CatUI, "msg2")
	Info(CatUI, "msg3")
	Info(CatUI, "msg4")

	logs := GetRecentLogs(3)
	require.Len(t, logs, 3)
	require.Contains(t, logs[0], "msg2")
	require.Contains(t, logs[2], "msg4")

	ClearBuffer()
	require.Nil(t, GetRecentLogs(3))
}

func TestRecentAtLevel(t *testing.T) {
	resetLogger()
	InitWriter(nil, 10)

	Debug(CatUI, "opened")
	Warn(CatUI, "no source element")
	Info(CatForm, "hidden input inserted")
	Error(CatFixtures, "parse failed")

	got := RecentAtLevel(10, LevelInfo)
	require.Len(t, got, 3)
	require.Contains(t, got[0], "no source element")
	require.Contains(t, got[2], "parse failed")

	got = RecentAtLevel(1, LevelWarn)
	require.Len(t, got, 1)
	require.Contains(t, got[0], "parse failed")
}

func TestFormatEntry(t *testing.T) {
	ts := time.Date(2026, 10, 19, 10, 45, 0, 0, time.UTC)
	got := formatEntry(ts, LevelWarn, CatUI, "no source element", "placeholder", "All")
	require.Equal(t, "2026-10-19T10:45:00 [WARN] [ui] no source element placeholder=All\n", got)
}

func TestEntryLevel(t *testing.T) {
	ts := time.Date(2026, 10, 19, 10, 45, 0, 0, time.UTC)
	require.Equal(t, LevelError, EntryLevel(formatEntry(ts, LevelError, CatServer, "boom")))
	require.Equal(t, LevelInfo, EntryLevel(formatEntry(ts, LevelInfo, CatServer, "ok")))
	require.Equal(t, LevelDebug, EntryLevel("garbage"))
	require.Equal(t, LevelDebug, EntryLevel("[nope] x"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level Level
		ok    bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"warning", LevelWarn, true},
		{" error ", LevelError, true},
		{"trace", LevelInfo, false},
	}
	for _, tt := range tests {
		lvl, ok := ParseLevel(tt.in)
		require.Equal(t, tt.level, lvl, tt.in)
		require.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "UNKNOWN", Level(99).String())
}

func TestLogger_InitWithTeaLog_Integration(t *testing.T) {
	resetLogger()
	logPath := filepath.Join(t.TempDir(), "tea.log")

	cleanup, err := InitWithTeaLog(logPath, "applytrack", 10)
	require.NoError(t, err)
	defer cleanup()

	Info(CatConfig, "integration test", "key", "value")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(content), "[INFO] [config] integration test key=value")
}
