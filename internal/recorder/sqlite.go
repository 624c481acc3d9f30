package recorder

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

// SQLiteRecorder persists analysis runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id      TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			period      TEXT,
			points      INTEGER,
			last_close  REAL,
			last_rsi    REAL,
			last_macd   REAL,
			last_sma50  REAL,
			last_sma200 REAL,
			direction   TEXT,
			confidence  INTEGER,
			summary     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol_ts ON analysis_runs(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS analysis_signals (
			run_id    TEXT NOT NULL REFERENCES analysis_runs(run_id),
			position  INTEGER NOT NULL,
			indicator TEXT,
			direction TEXT,
			weight    REAL,
			reason    TEXT,
			PRIMARY KEY (run_id, position)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps the undefined sentinel to SQL NULL.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runID := uuid.NewString()
	ind := a.Indicators
	sum := a.Summary

	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO analysis_runs
		(run_id, timestamp, symbol, period, points, last_close,
		 last_rsi, last_macd, last_sma50, last_sma200,
		 direction, confidence, summary)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runID, a.AnalyzedAt.Unix(), a.Symbol, string(a.Period), len(a.Points), a.LastClose(),
		nullable(calculator.Last(ind.RSI)), nullable(calculator.Last(ind.MACD.MACD)),
		nullable(calculator.Last(ind.SMA50)), nullable(calculator.Last(ind.SMA200)),
		string(sum.Direction), sum.Confidence, sum.Summary,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, s := range sum.Signals {
		if _, err := tx.Exec(`INSERT INTO analysis_signals
			(run_id, position, indicator, direction, weight, reason)
			VALUES (?,?,?,?,?,?)`,
			runID, i, s.Indicator, string(s.Direction), s.Weight, s.Reason,
		); err != nil {
			return "", fmt.Errorf("insert signal %s: %w", s.Indicator, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// RecentRuns returns up to limit runs for symbol, newest first, with their signals.
func (r *SQLiteRecorder) RecentRuns(symbol string, limit int) ([]RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT run_id, timestamp, symbol, period, points, last_close,
			direction, confidence, summary
		FROM analysis_runs WHERE symbol = ?
		ORDER BY timestamp DESC, rowid DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	var runs []RunRecord
	for rows.Next() {
		var (
			rec    RunRecord
			ts     int64
			period string
			dir    string
		)
		if err := rows.Scan(&rec.RunID, &ts, &rec.Symbol, &period, &rec.Points, &rec.LastClose,
			&dir, &rec.Confidence, &rec.Summary); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0)
		rec.Period = model.Period(period)
		rec.Direction = model.Direction(dir)
		runs = append(runs, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		sigs, err := r.signals(runs[i].RunID)
		if err != nil {
			return nil, err
		}
		runs[i].Signals = sigs
	}
	return runs, nil
}

func (r *SQLiteRecorder) signals(runID string) ([]model.Signal, error) {
	rows, err := r.db.Query(`SELECT indicator, direction, weight, reason
		FROM analysis_signals WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	var out []model.Signal
	for rows.Next() {
		var s model.Signal
		var dir string
		if err := rows.Scan(&s.Indicator, &dir, &s.Weight, &s.Reason); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		s.Direction = model.Direction(dir)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
