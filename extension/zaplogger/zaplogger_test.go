package zaplogger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/purkinje/go-messages/extension/zaplogger"
	"github.com/purkinje/go-messages/logger"
	"github.com/purkinje/go-messages/message"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zaplogger.Wrap(zap.New(core))

	registry := message.NewRegistry(message.WithLogger(log))
	require.NoError(t, registry.Register(message.KindTestCaseStarted, message.FactoryFor[message.TestCaseStarted]()))

	_, err := registry.Parse([]byte(`{"type":"coverage"}`))
	require.ErrorIs(t, err, message.ErrUnknownType)

	log.Info("info message", logger.With("answer", 42))
	log.Error("error message", logger.Err(errors.New("boom")))

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "Registered event factory", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"type": "tc_started", "replaced": true}, entries[0].ContextMap())

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "message: unknown event type: coverage", entries[1].ContextMap()["error"])

	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, int64(42), entries[2].ContextMap()["answer"])

	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
}

func TestNew(t *testing.T) {
	t.Run("it builds a logger at the requested level", func(t *testing.T) {
		l, err := zaplogger.New("error")
		require.NoError(t, err)

		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("it fails on unknown levels", func(t *testing.T) {
		l, err := zaplogger.New("verbose")
		assert.Error(t, err)
		assert.Nil(t, l)
	})
}
