package watch

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/model"
)

func summary(d model.Direction, c int) *model.AnalysisSummary {
	return &model.AnalysisSummary{Direction: d, Confidence: c}
}

func TestManager_ObserveDetectsDirectionChange(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "watch.json"))
	require.NoError(t, err)

	changed, prev := m.Observe("AAPL", summary(model.Bullish, 70))
	assert.True(t, changed)
	assert.Equal(t, model.Direction(""), prev)

	changed, prev = m.Observe("AAPL", summary(model.Bullish, 75))
	assert.False(t, changed)
	assert.Equal(t, model.Bullish, prev)

	changed, prev = m.Observe("AAPL", summary(model.Bearish, 60))
	assert.True(t, changed)
	assert.Equal(t, model.Bullish, prev)

	e, ok := m.Get("AAPL")
	require.True(t, ok)
	assert.Equal(t, model.Bearish, e.Direction)
	assert.Equal(t, 60, e.Confidence)
}

func TestManager_PersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "watch.json")
	fixed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	m, err := NewManager(path)
	require.NoError(t, err)
	m.now = func() time.Time { return fixed }
	m.Observe("MSFT", summary(model.Neutral, 50))
	m.Observe("AAPL", summary(model.Bullish, 80))

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, reloaded.Symbols())
	e, ok := reloaded.Get("MSFT")
	require.True(t, ok)
	assert.Equal(t, model.Neutral, e.Direction)
	assert.True(t, fixed.Equal(e.UpdatedAt))

	changed, _ := reloaded.Observe("AAPL", summary(model.Bullish, 81))
	assert.False(t, changed)
}

func TestLoadState_Missing(t *testing.T) {
	s, err := LoadState(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, s)
}
