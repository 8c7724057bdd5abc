package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, ".", cfg.OutDir)
	assert.Equal(t, BodyModeHistory, cfg.BodyMode)
	assert.Equal(t, IndexOrderByScore, cfg.IndexOrder)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.False(t, cfg.Debug)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SEARCHIVE_DATA_DIR", "/tmp/dump")
	t.Setenv("SEARCHIVE_OUT_DIR", "/tmp/out")
	t.Setenv("SEARCHIVE_BODY_MODE", "current")
	t.Setenv("SEARCHIVE_INDEX_ORDER", "id")
	t.Setenv("SEARCHIVE_ADDR", ":9999")
	t.Setenv("SEARCHIVE_DEBUG", "1")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/dump", cfg.DataDir)
	assert.Equal(t, "/tmp/out", cfg.OutDir)
	assert.Equal(t, BodyModeCurrent, cfg.BodyMode)
	assert.Equal(t, IndexOrderByID, cfg.IndexOrder)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.True(t, cfg.Debug)
}

func TestFromEnvRejectsBadModes(t *testing.T) {
	t.Setenv("SEARCHIVE_BODY_MODE", "both")
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCHIVE_BODY_MODE")
}

func TestFromEnvRejectsBadIndexOrder(t *testing.T) {
	t.Setenv("SEARCHIVE_INDEX_ORDER", "random")
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCHIVE_INDEX_ORDER")
}
