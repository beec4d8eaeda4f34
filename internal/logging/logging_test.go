package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/DoyleJ11/runecast-protocol/internal/config"
)

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "warn"

	for _, format := range []string{"json", "console"} {
		cfg.LogFormat = format
		log, err := New(cfg)
		require.NoError(t, err, format)
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel), format)
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel), format)
	}

	cfg.LogLevel = "chatty"
	_, err := New(cfg)
	assert.Error(t, err)
}
