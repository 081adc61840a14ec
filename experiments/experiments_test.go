package experiments

import (
	"context"
	"os"
	"path/filepath"
	"squares/meta"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) meta.Config {
	cfg := meta.DefaultConfig()
	cfg.Name = "test"
	cfg.Games = 3
	cfg.GridSize = 3
	cfg.GameTime = 20 * time.Second
	cfg.Seed = 99
	mcts := meta.DefaultAgentConfig(1)
	mcts.Batches = 2
	mcts.SafetyMargin = time.Millisecond
	random := meta.DefaultAgentConfig(2)
	random.Kind = "random"
	cfg.Agents = []meta.AgentConfig{mcts, random}
	cfg.Output = meta.OutputConfig{Dir: t.TempDir()}
	return cfg
}

func TestRun(t *testing.T) {
	t.Run("plays every game of every agent", func(t *testing.T) {
		cfg := testConfig(t)

		report, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		require.Equal(t, uint64(99), report.Seed)
		require.Len(t, report.Games, 6)
		for _, result := range report.Games {
			require.Empty(t, result.Record.Err)
			require.Equal(t, 9, result.Record.Moves)
			require.True(t, result.Grid.IsFull())
		}
		require.Contains(t, report.MeanScores, 1)
		require.Contains(t, report.MeanScores, 2)
		require.Empty(t, report.Dir, "Nothing should be written without an output format")
	})

	t.Run("every agent is dealt the same cards in game i", func(t *testing.T) {
		cfg := testConfig(t)

		report, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		for i := 0; i < cfg.Games; i++ {
			mctsCards := report.Games[i].Grid.Cards()
			randomCards := report.Games[cfg.Games+i].Grid.Cards()
			require.ElementsMatch(t, mctsCards, randomCards)
		}
	})

	t.Run("parallel games reproduce sequential scores", func(t *testing.T) {
		sequential := testConfig(t)
		parallel := testConfig(t)
		parallel.Parallel = 4

		want, err := Run(context.Background(), sequential)
		require.NoError(t, err)
		got, err := Run(context.Background(), parallel)
		require.NoError(t, err)

		require.Equal(t, want.MeanScores, got.MeanScores)
		for i := range want.Games {
			require.Equal(t, want.Games[i].Record.Score, got.Games[i].Record.Score)
		}
	})

	t.Run("writes csv and parquet records", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Output.CSV = true
		cfg.Output.Parquet = true

		report, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "move_records.parquet"} {
			_, err := os.Stat(filepath.Join(report.Dir, name))
			require.NoError(t, err, name)
		}
	})

	t.Run("rejects an unknown point system", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.PointSystem = "canasta"

		_, err := Run(context.Background(), cfg)

		require.Error(t, err)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, testConfig(t))

		require.ErrorIs(t, err, context.Canceled)
	})
}
