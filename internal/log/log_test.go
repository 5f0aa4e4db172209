package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })

	buf := &bytes.Buffer{}
	defaultLogger = &Logger{
		writer:   buf,
		enabled:  true,
		minLevel: LevelDebug,
	}
	return buf
}

func TestWrite_FormatsEntry(t *testing.T) {
	buf := setupTestLogger(t)

	Info(CatDecor, "Window pass complete", "rows", 12)

	line := buf.String()
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, "[decor]")
	assert.Contains(t, line, "Window pass complete")
	assert.Contains(t, line, "rows=12")
}

func TestWrite_RespectsMinLevel(t *testing.T) {
	buf := setupTestLogger(t)
	SetMinLevel(LevelWarn)

	Debug(CatParse, "should be dropped")
	Info(CatParse, "also dropped")
	Warn(CatParse, "kept")

	require.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestWrite_DisabledWritesNothing(t *testing.T) {
	buf := setupTestLogger(t)
	SetEnabled(false)

	Error(CatUI, "nobody home")

	assert.Empty(t, buf.String())
}

func TestErrorErr_AppendsErrorField(t *testing.T) {
	buf := setupTestLogger(t)

	ErrorErr(CatWatch, "Reload failed", assert.AnError, "path", "notes.org")

	line := buf.String()
	assert.Contains(t, line, "[ERROR]")
	assert.Contains(t, line, "path=notes.org")
	assert.Contains(t, line, "error="+assert.AnError.Error())
}

func TestErrorErr_NilError(t *testing.T) {
	buf := setupTestLogger(t)

	ErrorErr(CatStore, "Touch failed", nil)

	assert.Contains(t, buf.String(), "error=<nil>")
}

func TestWrite_OddFieldCount(t *testing.T) {
	buf := setupTestLogger(t)

	Info(CatQuery, "odd fields", "dangling")

	assert.Contains(t, buf.String(), "dangling=<missing>")
}

func TestWrite_NilLoggerIsNoop(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })
	defaultLogger = nil

	assert.NotPanics(t, func() {
		Info(CatConfig, "no logger installed")
	})
	assert.Nil(t, NewListener(context.Background()))
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}
