package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mechlab/internal/config"
)

func setupCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	configFile = ""
	cmd := &cobra.Command{Use: "test"}
	addSetupFlags(cmd)
	require.NoError(t, cmd.ParseFlags(flags))
	return cmd
}

func TestParseSet(t *testing.T) {
	key, value, err := parseSet("angle=60")
	require.NoError(t, err)
	assert.Equal(t, "angle", key)
	assert.Equal(t, 60.0, value)

	for _, bad := range []string{"angle", "=3", "angle=steep"} {
		_, _, err := parseSet(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseGrid(t *testing.T) {
	name, values, err := parseGrid("angle=15:75:5")
	require.NoError(t, err)
	assert.Equal(t, "angle", name)
	assert.Equal(t, []float64{15, 30, 45, 60, 75}, values)

	for _, bad := range []string{"angle", "angle=1:2", "=1:2:3", "angle=1:2:0", "angle=a:2:3"} {
		_, _, err := parseGrid(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(setupCmd(t), nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestResolveConfigFlagsOverridePreset(t *testing.T) {
	cmd := setupCmd(t, "--preset", "moon", "--time", "5", "--set", "angle=60")
	cfg, err := resolveConfig(cmd, []string{"projectile"})
	require.NoError(t, err)

	assert.Equal(t, 1.62, cfg.Env.Gravity)
	assert.Equal(t, 5.0, cfg.Duration)
	assert.Equal(t, 60.0, cfg.Projectile.Angle)
	assert.Equal(t, config.DefaultDt, cfg.Dt)
}

func TestResolveConfigFileOverridesPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("duration: 7\npendulum:\n  length: 3\n"), 0644))

	cmd := setupCmd(t, "--preset", "small")
	configFile = path
	defer func() { configFile = "" }()

	cfg, err := resolveConfig(cmd, []string{"pendulum"})
	require.NoError(t, err)
	assert.Equal(t, 7.0, cfg.Duration)
	assert.Equal(t, 3.0, cfg.Pendulum.Length)
	assert.Equal(t, 5.0, cfg.Pendulum.Angle)
}

func TestResolveConfigErrors(t *testing.T) {
	_, err := resolveConfig(setupCmd(t, "--preset", "nope"), []string{"pendulum"})
	assert.ErrorContains(t, err, "unknown preset")

	_, err = resolveConfig(setupCmd(t, "--set", "bogus=1"), []string{"incline"})
	assert.Error(t, err)

	_, err = resolveConfig(setupCmd(t, "--dt", "0"), nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
