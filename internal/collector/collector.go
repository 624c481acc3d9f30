package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
	"StockPulse/internal/strategy"
)

var (
	// ErrNoHistory is returned when the source has no bars for a symbol.
	ErrNoHistory = errors.New("no historical data available")
	// ErrSymbolNotFound is returned when the source does not know a symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Points []model.PricePoint
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, _ string, period model.Period) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Points != nil {
		return append([]model.PricePoint(nil), m.Points...), nil
	}
	return generateMockBars(m.Price, period.Days()*5/7), nil
}

func generateMockBars(basePrice float64, count int) []model.PricePoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates data fetching, indicator computation and analysis.
type Collector struct {
	Fetcher Fetcher
	Now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, Now: time.Now}
}

// Analyze fetches the symbol's history and runs the indicator engine and
// the signal analyzer over it.
func (c *Collector) Analyze(ctx context.Context, symbol string, period model.Period) (*model.Analysis, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, errors.New("ticker symbol required")
	}

	points, err := c.Fetcher.FetchHistory(ctx, symbol, period)
	if err != nil {
		return nil, fmt.Errorf("fetch %s history: %w", symbol, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoHistory)
	}

	ind, err := calculator.CalculateAll(points)
	if err != nil {
		return nil, fmt.Errorf("calculate %s indicators: %w", symbol, err)
	}
	summary, err := strategy.Analyze(points, ind)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}

	var quote *model.Quote
	if qf, ok := c.Fetcher.(QuoteFetcher); ok {
		if quote, err = qf.FetchQuote(ctx, symbol); err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("quote unavailable, deriving from history")
			quote = nil
		}
	}
	quote = completeQuote(quote, symbol, points)

	log.Debug().
		Str("symbol", symbol).
		Str("source", c.Fetcher.Name()).
		Int("points", len(points)).
		Str("direction", string(summary.Direction)).
		Int("confidence", summary.Confidence).
		Msg("analysis complete")

	return &model.Analysis{
		Symbol:     symbol,
		Period:     period,
		Quote:      quote,
		Points:     points,
		Indicators: ind,
		Summary:    summary,
		AnalyzedAt: c.Now(),
	}, nil
}
