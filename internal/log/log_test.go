package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGet_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, Get())
	assert.False(t, Get().Core().Enabled(zapcore.ErrorLevel))
}

func TestSet(t *testing.T) {
	orig := defaultLogger
	defer func() { defaultLogger = orig }()

	require.NoError(t, Set(false))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Set(true))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
	Flush()
}
