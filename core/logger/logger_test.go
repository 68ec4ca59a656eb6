package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_invalidLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	assert.Error(t, err)
}

func TestNew_levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			log, err := New(Config{Level: level})
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestForRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "digenv.log")

	log, err := New(Config{Level: "debug", OutputPaths: []string{out}})
	require.NoError(t, err)

	first := log.ForRun()
	second := log.ForRun()
	first.Debug("stage started", zap.String("role", "source"))
	second.Debug("stage started", zap.String("role", "sink"))
	require.NoError(t, log.Sync())

	contents, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"run_id":`)
	assert.Contains(t, lines[0], `"role":"source"`)
	assert.Contains(t, lines[1], `"role":"sink"`)
}

func TestNewNop(t *testing.T) {
	log := NewNop().ForRun()
	log.Error("dropped")
}
