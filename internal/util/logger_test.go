package util

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel, buf *bytes.Buffer) *Logger {
	return &Logger{
		level:   level,
		outputs: []Output{NewConsoleOutput(buf, FormatText)},
		fields:  make(map[string]interface{}),
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(LevelWarn, &buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(LevelDebug, &buf)

	logger.Info("dispatching", Field{Key: "method", Value: "GET"}, Field{Key: "status", Value: 200})

	output := buf.String()
	assert.Contains(t, output, "dispatching")
	assert.Contains(t, output, "method=GET")
	assert.Contains(t, output, "status=200")
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(LevelDebug, &buf)

	logger.With(Field{Key: "command", Value: "monitors"}).Info("listing")

	assert.Contains(t, buf.String(), "command=monitors")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{input: "debug", want: LevelDebug},
		{input: "DEBUG", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "warning", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "bogus", want: LevelInfo},
		{input: "", want: LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestWriteEntryJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	entry := LogEntry{
		Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Level:     "INFO",
		Message:   "hello",
	}
	require.NoError(t, writeEntry(&buf, entry, FormatJSON))

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"))
	assert.Contains(t, line, `"message":"hello"`)
	assert.Contains(t, line, `"level":"INFO"`)
}
