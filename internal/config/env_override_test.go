package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides_Run(t *testing.T) {
	t.Run("UNC_ variables override defaults", func(t *testing.T) {
		t.Setenv("UNC_INPUT", "people.txt")
		t.Setenv("UNC_NUMBER_RANGE", "5")
		t.Setenv("UNC_SPECIAL_CHARS", "true")
		t.Setenv("UNC_WORKERS", "4")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, "people.txt", cfg.Run.InputPath)
		assert.Equal(t, 5, cfg.Run.NumberRange)
		assert.True(t, cfg.Run.SpecialChars)
		assert.Equal(t, 4, cfg.Run.Workers)
	})

	t.Run("unset variables keep existing values", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Run.OutputPath = "keep.txt"
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, "keep.txt", cfg.Run.OutputPath)
		assert.Equal(t, NoNumbers, cfg.Run.NumberRange)
	})

	t.Run("malformed value is an error", func(t *testing.T) {
		t.Setenv("UNC_WORKERS", "many")

		cfg := DefaultConfig()
		assert.Error(t, cfg.applyEnvOverrides())
	})
}

func TestEnvOverrides_Logging(t *testing.T) {
	t.Setenv("UNC_LOG_LEVEL", "debug")
	t.Setenv("UNC_LOG_FORMAT", "json")

	cfg := DefaultConfig()
	require.NoError(t, cfg.applyEnvOverrides())

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestEnvOverrides_BeatFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/unc.yaml"
	cfg := DefaultConfig()
	cfg.Run.NumberRange = 2
	require.NoError(t, cfg.Save(path))

	t.Setenv("UNC_NUMBER_RANGE", "9")
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.Run.NumberRange)
}
