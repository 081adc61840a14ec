package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// MoveRow is the columnar form of a MoveRecord.
type MoveRow struct {
	Game       string  `parquet:"game,dict"`
	Agent      int32   `parquet:"agent"`
	Step       int32   `parquet:"step"`
	Card       string  `parquet:"card,dict"`
	Row        int32   `parquet:"row"`
	Col        int32   `parquet:"col"`
	BudgetNs   int64   `parquet:"budget_ns"`
	DurationNs int64   `parquet:"duration_ns"`
	Batches    int32   `parquet:"batches"`
	Iterations int32   `parquet:"iterations"`
	Rollouts   int32   `parquet:"rollouts"`
	RootVisits float64 `parquet:"root_visits"`
	BestMean   float64 `parquet:"best_mean"`
}

func NewMoveRow(record MoveRecord) MoveRow {
	return MoveRow{
		Game:       record.Game,
		Agent:      int32(record.Agent),
		Step:       int32(record.Step),
		Card:       record.Card,
		Row:        int32(record.Row),
		Col:        int32(record.Col),
		BudgetNs:   int64(record.Budget),
		DurationNs: int64(record.Duration),
		Batches:    int32(record.Batches),
		Iterations: int32(record.Iterations),
		Rollouts:   int32(record.Rollouts),
		RootVisits: record.RootVisits,
		BestMean:   record.BestMean,
	}
}

// WriteMoveParquet writes records to outPath through a temp file, so readers
// never see a partial file.
func WriteMoveParquet(outPath string, records []MoveRecord) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rows := make([]MoveRow, len(records))
	for i, record := range records {
		rows[i] = NewMoveRow(record)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)
	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "move_record_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteMoveRecordsParquet writes move_records.parquet next to the CSV files.
func (w *Writer) WriteMoveRecordsParquet(records []MoveRecord) error {
	return WriteMoveParquet(filepath.Join(w.baseDir, "move_records.parquet"), records)
}
