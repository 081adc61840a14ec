package meta

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AgentConfig describes one player taking part in an experiment.
type AgentConfig struct {
	ID              int           `yaml:"id"`
	Kind            string        `yaml:"kind"` // "mcts" or "random"
	TrialsPerDeck   int           `yaml:"trialsPerDeck,omitempty"`
	RolloutsPerLeaf int           `yaml:"rolloutsPerLeaf,omitempty"`
	Exploration     float64       `yaml:"exploration,omitempty"` // 0 uses EXPLORATION
	SafetyMargin    time.Duration `yaml:"safetyMargin,omitempty"`
	Batches         int           `yaml:"batches,omitempty"` // 0 searches until the deadline
	Goroutines      int           `yaml:"goroutines,omitempty"`
}

type OutputConfig struct {
	Dir     string `yaml:"dir"`
	CSV     bool   `yaml:"csv"`
	Parquet bool   `yaml:"parquet"`
}

type Config struct {
	Name        string        `yaml:"name"`
	Games       int           `yaml:"games"`    // Per agent
	Parallel    int           `yaml:"parallel"` // Games played at once
	GridSize    int           `yaml:"gridSize"`
	GameTime    time.Duration `yaml:"gameTime"`
	PointSystem string        `yaml:"pointSystem"`
	Seed        uint64        `yaml:"seed"` // 0 draws a random seed
	LogLevel    string        `yaml:"logLevel"`
	Agents      []AgentConfig `yaml:"agents"`
	Output      OutputConfig  `yaml:"output"`
}

func DefaultAgentConfig(id int) AgentConfig {
	return AgentConfig{
		ID:              id,
		Kind:            "mcts",
		TrialsPerDeck:   TRIALS_PER_DECK,
		RolloutsPerLeaf: ROLLOUTS_PER_LEAF,
		Exploration:     EXPLORATION,
		SafetyMargin:    SAFETY_MARGIN,
		Goroutines:      1,
	}
}

func DefaultConfig() Config {
	return Config{
		Name:        "pokersquares",
		Games:       10,
		Parallel:    1,
		GridSize:    GRID_SIZE,
		GameTime:    GAME_TIME,
		PointSystem: "american",
		LogLevel:    "info",
		Agents:      []AgentConfig{DefaultAgentConfig(1)},
		Output: OutputConfig{
			Dir: "experiments",
			CSV: true,
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	for i := range cfg.Agents {
		cfg.Agents[i] = withAgentDefaults(cfg.Agents[i])
	}
	return cfg, cfg.Validate()
}

func withAgentDefaults(a AgentConfig) AgentConfig {
	d := DefaultAgentConfig(a.ID)
	if a.Kind == "" {
		a.Kind = d.Kind
	}
	if a.TrialsPerDeck <= 0 {
		a.TrialsPerDeck = d.TrialsPerDeck
	}
	if a.RolloutsPerLeaf <= 0 {
		a.RolloutsPerLeaf = d.RolloutsPerLeaf
	}
	if a.Exploration <= 0 {
		a.Exploration = d.Exploration
	}
	if a.SafetyMargin <= 0 {
		a.SafetyMargin = d.SafetyMargin
	}
	if a.Goroutines <= 0 {
		a.Goroutines = d.Goroutines
	}
	return a
}

func (c Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.GridSize <= 0 {
		return fmt.Errorf("gridSize must be positive, got %d", c.GridSize)
	}
	if c.GridSize*c.GridSize > 52 {
		return fmt.Errorf("a %dx%d grid needs more than 52 cards", c.GridSize, c.GridSize)
	}
	if c.GameTime <= 0 {
		return fmt.Errorf("gameTime must be positive, got %v", c.GameTime)
	}
	if len(c.Agents) == 0 {
		return fmt.Errorf("at least one agent is required")
	}
	for _, a := range c.Agents {
		if a.Kind != "mcts" && a.Kind != "random" {
			return fmt.Errorf("agent %d: unknown kind %q", a.ID, a.Kind)
		}
	}
	return nil
}
