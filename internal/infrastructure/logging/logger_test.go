package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/FileExplorer/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"production", DefaultConfig(), false},
		{"development", Config{Level: "debug", Development: true, OutputPaths: []string{"stderr"}}, false},
		{"no outputs", Config{Level: "warn"}, false},
		{"bad level", Config{Level: "loud"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger.Logger)
		})
	}
}

func TestFromConfig(t *testing.T) {
	prod := FromConfig(config.LogConfig{Level: "info"})
	assert.Equal(t, []string{"stdout"}, prod.OutputPaths)
	assert.False(t, prod.Development)

	dev := FromConfig(config.LogConfig{Level: "debug", Development: true})
	assert.Equal(t, []string{"stderr"}, dev.OutputPaths)
	assert.Equal(t, "debug", dev.Level)
}

func TestComponentNaming(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := Wrap(zap.New(core))

	logger.Component("walker").Info("traversal finished")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "walker", entries[0].LoggerName)
}

func TestWrapNil(t *testing.T) {
	assert.NotNil(t, Wrap(nil).Logger)
	assert.NotNil(t, NewDefault())
}

func TestParseLevel(t *testing.T) {
	l, err := parseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, l)

	_, err = parseLevel("nope")
	assert.Error(t, err)
}
