package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	l, err := New(false, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = New(true, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestWithFields_NilLogger(t *testing.T) {
	l := WithFields(nil, Consultant("c1"))
	require.NotNil(t, l)
	l.Info("discarded")
}

func TestWithFields_AttachesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	assert.Same(t, base, WithFields(base))

	WithFields(base, Consultant("c1"), Tender("t1")).Info("scored")
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]any{"consultant_id": "c1", "tender_id": "t1"}, entries[0].ContextMap())
}
