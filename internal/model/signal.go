package model

import "time"

// Direction is the qualitative verdict of a signal or an analysis.
type Direction string

const (
	Bullish Direction = "bullish"
	Bearish Direction = "bearish"
	Neutral Direction = "neutral"
)

// Signal is one indicator's verdict.
type Signal struct {
	Indicator string    `json:"indicator"`
	Direction Direction `json:"signal"`
	Weight    float64   `json:"weight"`
	Reason    string    `json:"reason"`
}

// AnalysisSummary is the aggregate verdict over all signals.
type AnalysisSummary struct {
	Direction  Direction `json:"direction"`
	Confidence int       `json:"confidence"` // 0-100
	Summary    string    `json:"summary"`
	Signals    []Signal  `json:"signals"`
}

// Count returns how many signals point in direction d.
func (s *AnalysisSummary) Count(d Direction) int {
	n := 0
	for _, sig := range s.Signals {
		if sig.Direction == d {
			n++
		}
	}
	return n
}

// Analysis bundles one symbol's history with its indicators and verdict.
type Analysis struct {
	Symbol     string           `json:"symbol"`
	Period     Period           `json:"period"`
	Quote      *Quote           `json:"quote"`
	Points     []PricePoint     `json:"historical"`
	Indicators *Indicators      `json:"indicators"`
	Summary    *AnalysisSummary `json:"analysis"`
	AnalyzedAt time.Time        `json:"analyzedAt"`
}

// LastClose returns the latest close, or 0 for an empty history.
func (a *Analysis) LastClose() float64 {
	if len(a.Points) == 0 {
		return 0
	}
	return a.Points[len(a.Points)-1].Close
}
