package ctcnet_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/ctcnet/pkg/ctcnet"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ctcnet.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
fixedpoint_ratio = 0.01
max_duration = "250ms"
max_iterations = 1000
queue = "LIFO"
`)
	cfg, err := ctcnet.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.FixedPointRatio)
	assert.Equal(t, 250*time.Millisecond, cfg.MaxDuration)
	assert.Equal(t, 1000, cfg.MaxIterations)
	assert.Equal(t, ctcnet.QueueLIFO, cfg.Queue)
}

func TestLoadConfig_KeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := ctcnet.LoadConfig(writeConfig(t, "max_iterations = 7\n"))
	require.NoError(t, err)
	assert.Equal(t, ctcnet.DefaultFixedPointRatio, cfg.FixedPointRatio)
	assert.Equal(t, 7, cfg.MaxIterations)
	assert.Equal(t, ctcnet.QueueFIFO, cfg.Queue)
}

func TestLoadConfig_ExplicitZeroRatio(t *testing.T) {
	cfg, err := ctcnet.LoadConfig(writeConfig(t, "fixedpoint_ratio = 0.0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.FixedPointRatio)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown_key", "ratio = 0.1\n"},
		{"bad_duration", "max_duration = \"soon\"\n"},
		{"bad_queue", "queue = \"random\"\n"},
		{"ratio_out_of_range", "fixedpoint_ratio = 2.0\n"},
		{"negative_iterations", "max_iterations = -1\n"},
		{"syntax", "fixedpoint_ratio = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctcnet.LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := ctcnet.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, ctcnet.DefaultConfig().Validate())

	bad := ctcnet.DefaultConfig()
	bad.FixedPointRatio = -1
	assert.ErrorIs(t, bad.Validate(), ctcnet.ErrInvalidRatio)

	bad = ctcnet.DefaultConfig()
	bad.MaxDuration = -time.Second
	assert.Error(t, bad.Validate())

	bad = ctcnet.DefaultConfig()
	bad.Queue = ctcnet.QueuePolicy(9)
	assert.Error(t, bad.Validate())

	_, err := ctcnet.NewWithConfig(bad)
	assert.Error(t, err)

	n, err := ctcnet.NewWithConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, *ctcnet.DefaultConfig(), n.Config())
}

func TestParseQueuePolicy(t *testing.T) {
	for in, want := range map[string]ctcnet.QueuePolicy{"": ctcnet.QueueFIFO, "fifo": ctcnet.QueueFIFO, " Lifo ": ctcnet.QueueLIFO} {
		got, err := ctcnet.ParseQueuePolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ctcnet.ParseQueuePolicy("stack")
	assert.Error(t, err)
	assert.Equal(t, "lifo", ctcnet.QueueLIFO.String())
}
