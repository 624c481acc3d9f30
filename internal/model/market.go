package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PricePoint represents a single daily bar.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// MarshalJSON renders the date as a calendar day.
func (p PricePoint) MarshalJSON() ([]byte, error) {
	type alias struct {
		Date   string  `json:"date"`
		Open   float64 `json:"open"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"close"`
		Volume float64 `json:"volume"`
	}
	return json.Marshal(alias{
		Date:   p.Date.Format(time.DateOnly),
		Open:   p.Open,
		High:   p.High,
		Low:    p.Low,
		Close:  p.Close,
		Volume: p.Volume,
	})
}

// Quote is the latest market snapshot of a symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Volume        float64 `json:"volume"`
	AvgVolume     float64 `json:"avgVolume"`
	MarketCap     float64 `json:"marketCap"`
	Exchange      string  `json:"exchange"`
}

// Period is the history window requested from a data source.
type Period string

const (
	Period1M Period = "1mo"
	Period3M Period = "3mo"
	Period6M Period = "6mo"
	Period1Y Period = "1y"
	Period2Y Period = "2y"
)

// DefaultPeriod is used when no period is given.
const DefaultPeriod = Period1Y

// ParsePeriod validates a period string. Empty input yields DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return DefaultPeriod, nil
	case Period1M, Period3M, Period6M, Period1Y, Period2Y:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported period %q", s)
	}
}

// Days returns the approximate number of calendar days covered by the period.
func (p Period) Days() int {
	switch p {
	case Period1M:
		return 31
	case Period3M:
		return 92
	case Period6M:
		return 183
	case Period2Y:
		return 731
	default:
		return 366
	}
}
