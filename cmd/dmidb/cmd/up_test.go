package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ssargent/dmidb/pkg/acquire"
	"github.com/ssargent/dmidb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpCommand(t *testing.T) {
	env := newTestEnv(t)

	t.Run("bootstrap, capture and serve", func(t *testing.T) {
		out, err := env.run(t, "up", "--port", "9100", "--print-keys")
		require.NoError(t, err)
		assert.Contains(t, out, "First run detected")

		// Verify config was created
		require.True(t, config.ConfigExists(env.configPath))
		cfg, err := config.LoadConfig(env.configPath)
		require.NoError(t, err)
		assert.Equal(t, env.dataDir, cfg.DataDir)
		assert.Contains(t, out, "API Key: "+cfg.Security.APIKey)

		// The flag overrides the saved port for this run only
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 9100, env.starter.config.Port)
		assert.Equal(t, cfg.Security.APIKey, env.starter.config.APIKey)
		assert.Equal(t, 1, env.starter.calls)

		assert.Len(t, env.entries(t), 1)
	})

	t.Run("load existing config", func(t *testing.T) {
		cfg, err := config.LoadConfig(env.configPath)
		require.NoError(t, err)

		out, err := env.run(t, "up")
		require.NoError(t, err)
		assert.Contains(t, out, "Loaded existing configuration")
		assert.Equal(t, cfg.Security.APIKey, env.starter.config.APIKey)
		assert.Equal(t, 8080, env.starter.config.Port)

		assert.Len(t, env.entries(t), 2)
	})

	t.Run("skip capture", func(t *testing.T) {
		_, err := env.run(t, "up", "--no-capture")
		require.NoError(t, err)
		assert.Len(t, env.entries(t), 2)
	})
}

func TestUpCommand_CaptureFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	env.container.SetSourceFactory(func(config.Source) (acquire.Source, error) {
		return nil, errors.New("no firmware tables")
	})

	out, err := env.run(t, "up")
	require.NoError(t, err)
	assert.NotContains(t, out, "Captured snapshot")
	assert.Equal(t, 1, env.starter.calls)
	assert.Empty(t, env.entries(t))
}

func TestUpCommand_ServerError(t *testing.T) {
	env := newTestEnv(t)
	env.starter.err = errors.New("address in use")

	_, err := env.run(t, "up", "--no-capture")
	assert.ErrorContains(t, err, "address in use")
}

func TestUpCommandErrorHandling(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("invalid config file", func(t *testing.T) {
		env := newTestEnv(t)
		err := os.WriteFile(env.configPath, []byte("invalid: yaml: content: ["), 0600)
		require.NoError(t, err)

		_, err = env.run(t, "up")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
		assert.Zero(t, env.starter.calls)
	})

	t.Run("config bootstrap failure", func(t *testing.T) {
		// A regular file in the path cannot become a directory, even for root
		blocker := filepath.Join(tmpDir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

		_, err := config.BootstrapConfig(filepath.Join(blocker, "config.yaml"), "/some/data")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create config directory")
	})
}

func TestDefaultConfigPath(t *testing.T) {
	path := config.GetDefaultConfigPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "dmidb")
}
