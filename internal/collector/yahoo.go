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

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	return &YahooFetcher{
		BaseURL: yahooBaseURL,
		Client:  newHTTPClient(proxyURL),
	}
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []yahooResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooResult struct {
	Meta       yahooMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

type yahooMeta struct {
	Symbol               string  `json:"symbol"`
	LongName             string  `json:"longName"`
	ShortName            string  `json:"shortName"`
	ExchangeName         string  `json:"exchangeName"`
	FullExchangeName     string  `json:"fullExchangeName"`
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
	RegularMarketVolume  float64 `json:"regularMarketVolume"`
	ChartPreviousClose   float64 `json:"chartPreviousClose"`
	PreviousClose        float64 `json:"previousClose"`
}

func valueAt(vals []*float64, i int) (float64, bool) {
	if i < 0 || i >= len(vals) || vals[i] == nil {
		return 0, false
	}
	return *vals[i], true
}

// chart calls the chart endpoint and returns the first result, or nil when
// Yahoo has no data for the range.
func (f *YahooFetcher) chart(ctx context.Context, symbol, rng string) (*yahooResult, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(symbol), rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo: %w: %s", ErrSymbolNotFound, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, nil
	}
	return &chart.Chart.Result[0], nil
}

// FetchHistory returns daily bars for the period. Bars without a close are dropped.
func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.PricePoint, error) {
	result, err := f.chart(ctx, symbol, string(period))
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Indicators.Quote) == 0 {
		return nil, nil
	}

	quote := result.Indicators.Quote[0]
	points := make([]model.PricePoint, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		c, ok := valueAt(quote.Close, i)
		if !ok {
			continue // holidays and halted sessions
		}
		o, _ := valueAt(quote.Open, i)
		h, _ := valueAt(quote.High, i)
		l, _ := valueAt(quote.Low, i)
		v, _ := valueAt(quote.Volume, i)
		points = append(points, model.PricePoint{
			Date:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}
	return normalize(points), nil
}

// FetchQuote returns the current session snapshot from the chart metadata.
// Change, average volume and similar derived fields are left for the caller.
func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	result, err := f.chart(ctx, symbol, "1d")
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("yahoo: %w: %s", ErrSymbolNotFound, symbol)
	}

	m := result.Meta
	q := &model.Quote{
		Symbol:        m.Symbol,
		Name:          firstNonEmpty(m.LongName, m.ShortName, m.Symbol),
		Price:         m.RegularMarketPrice,
		High:          m.RegularMarketDayHigh,
		Low:           m.RegularMarketDayLow,
		Volume:        m.RegularMarketVolume,
		PreviousClose: m.ChartPreviousClose,
		Exchange:      firstNonEmpty(m.FullExchangeName, m.ExchangeName),
	}
	if q.PreviousClose == 0 {
		q.PreviousClose = m.PreviousClose
	}
	if len(result.Indicators.Quote) > 0 {
		if o, ok := valueAt(result.Indicators.Quote[0].Open, len(result.Timestamp)-1); ok {
			q.Open = o
		}
	}
	return q, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
