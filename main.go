package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"squares/experiments"
	"squares/game"
	"squares/meta"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML experiment config, defaults are used when empty")
	games := flag.Int("games", 0, "Games per agent, overrides the config")
	seed := flag.Uint64("seed", 0, "Base seed for deals and agents, overrides the config")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error), overrides the config")
	show := flag.Bool("show", false, "Render every final grid")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := meta.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = meta.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := experiments.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	points, _ := game.PointSystemByName(cfg.PointSystem)
	if *show {
		for _, result := range report.Games {
			fmt.Printf("game %d (agent %d)\n", result.Record.Index, result.Record.Agent)
			game.Render(os.Stdout, result.Grid, points)
			fmt.Println()
		}
	}

	ids := make([]int, 0, len(report.MeanScores))
	for id := range report.MeanScores {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	output := termenv.NewOutput(os.Stdout)
	for _, id := range ids {
		fmt.Printf("agent %d: %s\n", id, output.String(fmt.Sprintf("%.2f", report.MeanScores[id])).Bold())
	}
	fmt.Printf("seed %d\n", report.Seed)
	if report.Dir != "" {
		fmt.Printf("records in %s\n", report.Dir)
	}
}
