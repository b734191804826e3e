package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/codeplex/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stateDir := t.TempDir()
			t.Setenv(paths.EnvStateDir, stateDir)

			var console bytes.Buffer
			SetupLoggerWithWriter(tt.verbosity, &console)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			_, err := os.Stat(filepath.Join(stateDir, paths.LogFileName))
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	logger := GetLogger("replicate")
	logger.Info().Msg("copying tree")

	assert.Contains(t, buf.String(), `"component":"replicate"`)
	assert.Contains(t, buf.String(), "copying tree")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "copy-program-tree")
	require.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}
