package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core, logs := observer.New(level)
	return &Logger{SugaredLogger: zap.New(core).Sugar(), level: level}, logs
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestSetLevel(t *testing.T) {
	log, logs := newObserved()

	log.Debugw("hidden")
	log.SetLevel("debug")
	log.Debugw("shown")

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestWithFields(t *testing.T) {
	log, logs := newObserved()

	log.WithFields(map[string]interface{}{"component": "test"}).Infow("hello", "link_id", 3)

	entry := logs.All()[0]
	assert.Equal(t, "test", entry.ContextMap()["component"])
	assert.EqualValues(t, 3, entry.ContextMap()["link_id"])
}

func TestEnvInt(t *testing.T) {
	t.Setenv("LOG_MAX_BACKUPS", "9")
	assert.Equal(t, 9, envInt("LOG_MAX_BACKUPS", 5))

	t.Setenv("LOG_MAX_BACKUPS", "-1")
	assert.Equal(t, 5, envInt("LOG_MAX_BACKUPS", 5))
}

func TestNewLogger_Production(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_FILE", t.TempDir()+"/app.log")

	log := NewLogger()
	log.Infow("written to rotating file")
	log.Sync()
}
