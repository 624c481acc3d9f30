package recorder

import (
	"time"

	"StockPulse/internal/model"
)

// RunRecord is one stored analysis run.
type RunRecord struct {
	RunID      string
	Timestamp  time.Time
	Symbol     string
	Period     model.Period
	Points     int
	LastClose  float64
	Direction  model.Direction
	Confidence int
	Summary    string
	Signals    []model.Signal
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) (runID string, err error)
	RecentRuns(symbol string, limit int) ([]RunRecord, error)
	Close() error
}
