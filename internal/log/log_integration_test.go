package log

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := New(Config{
		Level:    "debug",
		FilePath: logPath,
	})
	require.NoError(t, err)

	SetDefaultLogger(logger)
	t.Cleanup(func() { SetDefaultLogger(nil) })

	Debug("Debug message", "test", true)
	Info("Info message", "test", true)
	Warn("Warning message", "test", true)
	Error("Error message", "error", fmt.Errorf("test error"))
	Trace("Trace message")

	// Close logger to ensure file is written
	logger.Close()

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	contentStr := string(content)
	assert.Contains(t, contentStr, "Debug message")
	assert.Contains(t, contentStr, "Info message")
	assert.Contains(t, contentStr, "Warning message")
	assert.Contains(t, contentStr, "Error message")
	assert.Contains(t, contentStr, "test error")
	assert.NotContains(t, contentStr, "Trace message", "trace output requires the trace level")
}

func TestWriterLoggerWithTrace(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "trace", Writer: &buf})
	require.NoError(t, err)

	logger.With("component", "grid").Trace("page fetched", "offset", 100)
	logger.Close()

	assert.Contains(t, buf.String(), "TRACE: page fetched")
	assert.Contains(t, buf.String(), "component=grid")
	assert.Contains(t, buf.String(), "offset=100")
}

func TestParseLogLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "chatty", Writer: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestDefaultLoggerIsNeverNil(t *testing.T) {
	SetDefaultLogger(nil)
	require.NotNil(t, DefaultLogger())
	assert.NotPanics(t, func() { Info("dropped") })

	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Writer: &buf})
	require.NoError(t, err)
	SetDefaultLogger(logger)
	t.Cleanup(func() { SetDefaultLogger(nil) })

	With("query_id", 7).Info("grid ready")
	assert.Contains(t, buf.String(), "query_id=7")
}
