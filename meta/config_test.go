package meta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("overriding defaults from yaml", func(t *testing.T) {
		path := writeConfig(t, `
name: strength
games: 3
gameTime: 12s
pointSystem: british
seed: 42
agents:
  - id: 1
    kind: mcts
    trialsPerDeck: 20
    safetyMargin: 250ms
  - id: 2
    kind: random
output:
  dir: out
  parquet: true
`)

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, "strength", cfg.Name)
		require.Equal(t, 3, cfg.Games)
		require.Equal(t, 12*time.Second, cfg.GameTime)
		require.Equal(t, "british", cfg.PointSystem)
		require.Equal(t, uint64(42), cfg.Seed)
		require.Equal(t, GRID_SIZE, cfg.GridSize, "Unset fields should keep defaults")
		require.Len(t, cfg.Agents, 2)
		require.Equal(t, 20, cfg.Agents[0].TrialsPerDeck)
		require.Equal(t, 250*time.Millisecond, cfg.Agents[0].SafetyMargin)
		require.Equal(t, EXPLORATION, cfg.Agents[0].Exploration, "Unset agent fields should keep defaults")
		require.Equal(t, ROLLOUTS_PER_LEAF, cfg.Agents[1].RolloutsPerLeaf)
		require.Equal(t, "random", cfg.Agents[1].Kind)
		require.Equal(t, "out", cfg.Output.Dir)
		require.True(t, cfg.Output.Parquet)
	})

	t.Run("rejecting an unknown agent kind", func(t *testing.T) {
		path := writeConfig(t, `
agents:
  - id: 1
    kind: oracle
`)

		_, err := LoadConfig(path)

		require.ErrorContains(t, err, "unknown kind")
	})

	t.Run("rejecting a grid larger than the deck", func(t *testing.T) {
		path := writeConfig(t, "gridSize: 8\n")

		_, err := LoadConfig(path)

		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}

func TestDefaultConfig(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}
