package watch

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"StockPulse/internal/model"
)

// Manager tracks the last verdict per symbol with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    State
	filePath string
	now      func() time.Time
}

// NewManager creates a Manager, loading state from disk.
func NewManager(filePath string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: state, filePath: filePath, now: time.Now}, nil
}

// Observe records the verdict for symbol and reports whether its direction
// differs from the previous one. A symbol seen for the first time counts as changed.
func (m *Manager) Observe(symbol string, summary *model.AnalysisSummary) (changed bool, previous model.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, seen := m.state[symbol]
	m.state[symbol] = Entry{
		Direction:  summary.Direction,
		Confidence: summary.Confidence,
		UpdatedAt:  m.now(),
	}
	if err := m.save(); err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("failed to save watch state")
	}

	if !seen {
		return true, ""
	}
	return prev.Direction != summary.Direction, prev.Direction
}

// Get returns the last entry for symbol.
func (m *Manager) Get(symbol string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.state[symbol]
	return e, ok
}

// Symbols returns every tracked symbol in sorted order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.state))
	for s := range m.state {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (m *Manager) save() error {
	if m.filePath == "" {
		return nil
	}
	return SaveState(m.filePath, m.state)
}
