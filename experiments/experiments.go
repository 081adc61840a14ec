package experiments

import (
	"context"
	"fmt"
	"squares/engine"
	"squares/experiments/metrics"
	"squares/game"
	"squares/meta"
	"squares/searcher"
	"squares/searcher/agent"
	"squares/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

// GameResult is one finished game and the grid it left.
type GameResult struct {
	Record metrics.GameRecord
	Grid   *game.Grid
}

type Report struct {
	Seed       uint64 // Base seed the deals and agents were derived from
	Dir        string // Where the records were written, if anywhere
	Games      []GameResult
	MeanScores map[int]float64 // By AgentConfig.ID
}

// Run plays cfg.Games games for every configured agent and writes the records.
// Game i deals the same cards to every agent so their scores compare directly.
func Run(ctx context.Context, cfg meta.Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	points, err := game.PointSystemByName(cfg.PointSystem)
	if err != nil {
		return Report{}, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = frand.Uint64n(1<<63) + 1
	}

	log.Info().Msgf("starting %s experiment with %d agents, %d games each, %s points, seed %d...",
		cfg.Name, len(cfg.Agents), cfg.Games, points.Name, seed)

	total := len(cfg.Agents) * cfg.Games
	results := make([]GameResult, total)
	moves := make([][]metrics.MoveRecord, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Parallel, 1))
	for ai, config := range cfg.Agents {
		for i := 0; i < cfg.Games; i++ {
			index := ai*cfg.Games + i
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				log.Info().Msgf("starting agent %d game %d of %d...", config.ID, i+1, cfg.Games)

				a := createAgent(config, cfg.GridSize, points, agentSeed(seed, config.ID, i))
				e := engine.LocalEngine(a, points,
					engine.WithGridSize(cfg.GridSize),
					engine.WithGameTime(cfg.GameTime),
					engine.WithSeed(dealSeed(seed, i)),
					engine.WithAgentID(config.ID),
				)
				// Rule violations are recorded on the game, not fatal to the experiment
				_, gameMetric, moveMetrics, _ := e.Run()

				results[index] = GameResult{
					Record: metrics.GameRecord{Index: index + 1, GameMetric: gameMetric},
					Grid:   e.Grid(),
				}
				records := make([]metrics.MoveRecord, len(moveMetrics))
				for j, mm := range moveMetrics {
					records[j] = metrics.MoveRecord{Game: gameMetric.ID, Agent: config.ID, MoveMetric: mm}
				}
				moves[index] = records
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("experiment %s interrupted: %w", cfg.Name, err)
	}

	report := Report{Seed: seed, Games: results, MeanScores: meanScores(cfg.Agents, results)}
	for _, config := range cfg.Agents {
		log.Info().Msgf("agent %d (%s): mean score %.2f", config.ID, config.Kind, report.MeanScores[config.ID])
	}
	log.Info().Msgf("completed %s experiment", cfg.Name)

	report.Dir, err = write(cfg, results, moves)
	return report, err
}

func write(cfg meta.Config, results []GameResult, moves [][]metrics.MoveRecord) (string, error) {
	if !cfg.Output.CSV && !cfg.Output.Parquet {
		return "", nil
	}
	writer, err := metrics.NewWriter(cfg.Output.Dir, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	gameRecords := make([]metrics.GameRecord, len(results))
	for i, result := range results {
		gameRecords[i] = result.Record
	}
	moveRecords := []metrics.MoveRecord{}
	for _, records := range moves {
		moveRecords = append(moveRecords, records...)
	}

	if cfg.Output.CSV {
		if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
			return "", fmt.Errorf("failed to store agent configs: %w", err)
		}
		if err := writer.WriteGameRecords(gameRecords); err != nil {
			return "", fmt.Errorf("failed to write game records: %w", err)
		}
		if err := writer.WriteMoveRecords(moveRecords); err != nil {
			return "", fmt.Errorf("failed to write move records: %w", err)
		}
		log.Info().Msgf("stored csv records in %s", writer.Dir())
	}
	if cfg.Output.Parquet {
		if err := writer.WriteMoveRecordsParquet(moveRecords); err != nil {
			return "", fmt.Errorf("failed to write parquet move records: %w", err)
		}
		log.Info().Msgf("stored parquet move records in %s", writer.Dir())
	}
	return writer.Dir(), nil
}

func createAgent(config meta.AgentConfig, gridSize int, points *game.PointSystem, seed uint64) agent.Agent {
	if config.Kind == "random" {
		return agent.NewRandomAgent(gridSize, seed)
	}

	options := []searcher.Option{
		searcher.WithGridSize(gridSize),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}
	if config.TrialsPerDeck > 0 {
		options = append(options, searcher.WithTrialsPerDeck(config.TrialsPerDeck))
	}
	if config.RolloutsPerLeaf > 0 {
		options = append(options, searcher.WithRolloutsPerLeaf(config.RolloutsPerLeaf))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.SafetyMargin > 0 {
		options = append(options, searcher.WithSafetyMargin(config.SafetyMargin))
	}
	if config.Batches > 0 {
		options = append(options, searcher.WithBatches(config.Batches))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}

	return agent.NewEvaluationAgent(searcher.NewMCTS(points.Score, options...))
}

func dealSeed(base uint64, game int) uint64 {
	return mix(base + uint64(game))
}

func agentSeed(base uint64, agentID, game int) uint64 {
	return mix((base ^ uint64(agentID)<<32) + uint64(game) + 1)
}

// mix is the splitmix64 finaliser. A zero result falls back to a random seed.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func meanScores(configs []meta.AgentConfig, results []GameResult) map[int]float64 {
	scores := make(map[int][]float64, len(configs))
	for _, result := range results {
		scores[result.Record.Agent] = append(scores[result.Record.Agent], result.Record.Score)
	}
	means := make(map[int]float64, len(configs))
	for _, config := range configs {
		means[config.ID] = utils.Mean(scores[config.ID])
	}
	return means
}
