package collector

import (
	"context"
	"sort"
	"time"

	"StockPulse/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.PricePoint, error)
	Name() string
}

// QuoteFetcher is implemented by sources that also report a live quote.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
}

// normalize truncates dates to the calendar day, sorts ascending and keeps
// the last row for any repeated day.
func normalize(points []model.PricePoint) []model.PricePoint {
	for i := range points {
		d := points[i].Date.UTC()
		points[i].Date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	out := points[:0]
	for _, p := range points {
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
