package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"StockPulse/internal/model"
)

// RESTFetcher implements Fetcher against a JSON bars endpoint.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// FetchHistory requests roughly one bar per calendar day of the period.
func (f *RESTFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), period.Days())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch bars: %w: %s", ErrSymbolNotFound, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}

	var bars []restBar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	cutoff := time.Now().AddDate(0, 0, -period.Days())
	points := make([]model.PricePoint, 0, len(bars))
	for _, b := range bars {
		ts := time.Unix(b.Timestamp, 0)
		if ts.Before(cutoff) {
			continue
		}
		points = append(points, model.PricePoint{
			Date:   ts,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	return normalize(points), nil
}
