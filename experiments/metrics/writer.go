package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"squares/meta"
	"strconv"
	"time"
)

type GameRecord struct {
	Index int // Position in the experiment
	GameMetric
}

type MoveRecord struct {
	Game  string // GameMetric.ID
	Agent int    // AgentConfig.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <dir>/<name>/<timestamp> for the files of one experiment.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []meta.AgentConfig) error {
	header := []string{"id", "kind", "trials_per_deck", "rollouts_per_leaf", "exploration", "safety_margin", "batches", "goroutines"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.TrialsPerDeck),
			strconv.Itoa(config.RolloutsPerLeaf),
			strconv.FormatFloat(config.Exploration, 'g', -1, 64),
			config.SafetyMargin.String(),
			strconv.Itoa(config.Batches),
			strconv.Itoa(config.Goroutines),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"index", "id", "agent", "score", "error", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Index),
			record.ID,
			strconv.Itoa(record.Agent),
			strconv.FormatFloat(record.Score, 'g', -1, 64),
			record.Err,
			strconv.Itoa(record.Moves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "agent", "step", "card", "row", "col", "budget", "duration", "batches", "iterations", "rollouts", "root_visits", "best_mean"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Step),
			record.Card,
			strconv.Itoa(record.Row),
			strconv.Itoa(record.Col),
			record.Budget.String(),
			record.Duration.String(),
			strconv.Itoa(record.Batches),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.Rollouts),
			strconv.FormatFloat(record.RootVisits, 'g', -1, 64),
			strconv.FormatFloat(record.BestMean, 'g', -1, 64),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
