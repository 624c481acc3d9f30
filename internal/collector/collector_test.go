package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/model"
)

const yahooBody = `{"chart":{"result":[{
	"timestamp":[1704292200,1704205800,1704378600,1704465000],
	"indicators":{"quote":[{
		"open":[101.5,100.0,null,103.0],
		"high":[102.5,101.0,null,104.0],
		"low":[100.5,99.0,null,102.0],
		"close":[102.0,100.5,null,103.5],
		"volume":[2000,1000,null,3000]
	}]}
}],"error":null}}`

func TestYahooFetcher_ParsesAndOrders(t *testing.T) {
	var gotPath, gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		fmt.Fprint(w, yahooBody)
	}))
	defer srv.Close()

	f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
	points, err := f.FetchHistory(context.Background(), "AAPL", model.Period6M)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Equal(t, "6mo", gotRange)
	require.Len(t, points, 3, "null bar must be dropped")
	assert.Equal(t, 100.5, points[0].Close)
	assert.Equal(t, 102.0, points[1].Close)
	assert.Equal(t, 103.5, points[2].Close)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i-1].Date.Before(points[i].Date))
	}
	assert.Equal(t, 0, points[0].Date.Hour())
	assert.Equal(t, time.UTC, points[0].Date.Location())
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Bad Request","description":"Invalid range"}}}`)
	}))
	defer srv.Close()

	f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
	_, err := f.FetchHistory(context.Background(), "AAPL", model.Period1Y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid range")
}

func TestYahooFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
	_, err := f.FetchHistory(context.Background(), "NOPE", model.Period1Y)
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestRESTFetcher(t *testing.T) {
	now := time.Now()
	day := func(n int) int64 { return now.AddDate(0, 0, -n).Unix() }

	var auth, limit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		limit = r.URL.Query().Get("limit")
		fmt.Fprintf(w, `[
			{"timestamp":%d,"open":1,"high":2,"low":0.5,"close":1.5,"volume":10},
			{"timestamp":%d,"open":1,"high":2,"low":0.5,"close":1.2,"volume":10},
			{"timestamp":%d,"open":1,"high":2,"low":0.5,"close":9.9,"volume":10}
		]`, day(1), day(2), day(400))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "")
	points, err := f.FetchHistory(context.Background(), "MSFT", model.Period1M)
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "31", limit)
	require.Len(t, points, 2, "bars older than the period are dropped")
	assert.Equal(t, 1.2, points[0].Close)
	assert.Equal(t, 1.5, points[1].Close)
}

func TestNormalize_KeepsLastOfDay(t *testing.T) {
	d := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	points := normalize([]model.PricePoint{
		{Date: d.AddDate(0, 0, 1), Close: 3},
		{Date: d, Close: 1},
		{Date: d.Add(2 * time.Hour), Close: 2},
	})
	require.Len(t, points, 2)
	assert.Equal(t, 2.0, points[0].Close)
	assert.Equal(t, 3.0, points[1].Close)
}

func TestCollector_Analyze(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCollector(&MockFetcher{Price: 100})
	c.Now = func() time.Time { return fixed }

	a, err := c.Analyze(context.Background(), " aapl ", model.Period1Y)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", a.Symbol)
	assert.Equal(t, model.Period1Y, a.Period)
	assert.Equal(t, fixed, a.AnalyzedAt)
	require.NotNil(t, a.Indicators)
	require.NotNil(t, a.Summary)
	assert.Len(t, a.Indicators.SMA200, len(a.Points))
	assert.Len(t, a.Summary.Signals, 5)
}

func TestCollector_Errors(t *testing.T) {
	_, err := NewCollector(&MockFetcher{Points: []model.PricePoint{}}).Analyze(context.Background(), "AAPL", model.Period1Y)
	assert.ErrorIs(t, err, ErrNoHistory)

	boom := errors.New("boom")
	_, err = NewCollector(&MockFetcher{Err: boom}).Analyze(context.Background(), "AAPL", model.Period1Y)
	assert.ErrorIs(t, err, boom)

	_, err = NewCollector(&MockFetcher{Price: 1}).Analyze(context.Background(), "  ", model.Period1Y)
	assert.Error(t, err)
}

const yahooQuoteBody = `{"chart":{"result":[{
	"meta":{"symbol":"AAPL","longName":"Apple Inc.","shortName":"Apple","exchangeName":"NMS",
		"fullExchangeName":"NasdaqGS","regularMarketPrice":190.5,"regularMarketDayHigh":191.0,
		"regularMarketDayLow":188.0,"regularMarketVolume":5000,"chartPreviousClose":189.0},
	"timestamp":[1704378600],
	"indicators":{"quote":[{"open":[189.5],"high":[191.0],"low":[188.0],"close":[190.5],"volume":[5000]}]}
}],"error":null}}`

func TestYahooFetcher_FetchQuote(t *testing.T) {
	var gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRange = r.URL.Query().Get("range")
		fmt.Fprint(w, yahooQuoteBody)
	}))
	defer srv.Close()

	f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
	q, err := f.FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "1d", gotRange)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "Apple Inc.", q.Name)
	assert.Equal(t, "NasdaqGS", q.Exchange)
	assert.Equal(t, 190.5, q.Price)
	assert.Equal(t, 191.0, q.High)
	assert.Equal(t, 188.0, q.Low)
	assert.Equal(t, 189.5, q.Open)
	assert.Equal(t, 189.0, q.PreviousClose)
	assert.Equal(t, 5000.0, q.Volume)
}

func TestYahooFetcher_FetchQuoteNameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"symbol":"XYZ","shortName":"Xyz Corp","exchangeName":"NYQ"}}],"error":null}}`)
	}))
	defer srv.Close()

	f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
	q, err := f.FetchQuote(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Equal(t, "Xyz Corp", q.Name)
	assert.Equal(t, "NYQ", q.Exchange)
	assert.Zero(t, q.Open)
}

func TestCompleteQuote(t *testing.T) {
	points := make([]model.PricePoint, 12)
	for i := range points {
		points[i] = model.PricePoint{Open: 9, High: 11, Low: 8, Close: float64(i + 1), Volume: float64(i + 1)}
	}

	q := completeQuote(nil, "MSFT", points)
	assert.Equal(t, "MSFT", q.Symbol)
	assert.Equal(t, "MSFT", q.Name)
	assert.Equal(t, "Unknown", q.Exchange)
	assert.Equal(t, 12.0, q.Price)
	assert.Equal(t, 11.0, q.PreviousClose)
	assert.Equal(t, 1.0, q.Change)
	assert.InDelta(t, 100.0/11, q.ChangePercent, 1e-9)
	assert.Equal(t, 9.0, q.Open)
	assert.Equal(t, 11.0, q.High)
	assert.Equal(t, 8.0, q.Low)
	assert.Equal(t, 12.0, q.Volume)
	assert.Equal(t, 7.5, q.AvgVolume, "mean of the last 10 volumes (3..12)")

	reported := completeQuote(&model.Quote{Symbol: "MSFT", Name: "Microsoft", Price: 20, PreviousClose: 16, Exchange: "NasdaqGS"}, "MSFT", points)
	assert.Equal(t, "Microsoft", reported.Name)
	assert.Equal(t, 4.0, reported.Change)
	assert.Equal(t, 25.0, reported.ChangePercent)
	assert.Equal(t, 16.0, reported.PreviousClose)

	single := completeQuote(nil, "ONE", points[:1])
	assert.Zero(t, single.PreviousClose)
	assert.Zero(t, single.Change)
	assert.Equal(t, 1.0, single.AvgVolume)
}

func TestCollector_AnalyzeUsesSourceQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("range") == "1d" {
			fmt.Fprint(w, yahooQuoteBody)
			return
		}
		fmt.Fprint(w, yahooBody)
	}))
	defer srv.Close()

	c := NewCollector(&YahooFetcher{BaseURL: srv.URL, Client: srv.Client()})
	a, err := c.Analyze(context.Background(), "aapl", model.Period1Y)
	require.NoError(t, err)
	require.NotNil(t, a.Quote)
	assert.Equal(t, "Apple Inc.", a.Quote.Name)
	assert.Equal(t, "NasdaqGS", a.Quote.Exchange)
	assert.InDelta(t, 1.5, a.Quote.Change, 1e-9)
	assert.InDelta(t, 2000.0, a.Quote.AvgVolume, 1e-9)
}

func TestCollector_AnalyzeDerivesQuoteWhenSourceFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("range") == "1d" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, yahooBody)
	}))
	defer srv.Close()

	c := NewCollector(&YahooFetcher{BaseURL: srv.URL, Client: srv.Client()})
	a, err := c.Analyze(context.Background(), "AAPL", model.Period1Y)
	require.NoError(t, err)
	require.NotNil(t, a.Quote)
	assert.Equal(t, "AAPL", a.Quote.Name)
	assert.Equal(t, "Unknown", a.Quote.Exchange)
	assert.Equal(t, 103.5, a.Quote.Price)
	assert.Equal(t, 102.0, a.Quote.PreviousClose)
}

func TestCollector_AnalyzeQuoteFromMockHistory(t *testing.T) {
	a, err := NewCollector(&MockFetcher{Price: 100}).Analyze(context.Background(), "spy", model.Period1M)
	require.NoError(t, err)
	require.NotNil(t, a.Quote)
	assert.Equal(t, "SPY", a.Quote.Symbol)
	assert.Equal(t, a.LastClose(), a.Quote.Price)
	assert.Equal(t, a.Points[len(a.Points)-2].Close, a.Quote.PreviousClose)
}
