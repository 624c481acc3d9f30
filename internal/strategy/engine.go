package strategy

import (
	"errors"
	"fmt"
	"math"

	"StockPulse/internal/model"
)

var (
	// ErrNilIndicators is returned when no indicator bundle is supplied.
	ErrNilIndicators = errors.New("indicators are required")
	// ErrLengthMismatch is returned when an indicator series is not aligned with the price series.
	ErrLengthMismatch = errors.New("indicator series length does not match price series")
)

const (
	// directionThreshold is the net score beyond which a direction is called.
	directionThreshold = 0.3
	maxConfidence      = 85.0
	baseConfidence     = 50.0
)

// Analyze scores every indicator on the latest bar and aggregates the signals
// into one verdict.
func Analyze(points []model.PricePoint, ind *model.Indicators) (*model.AnalysisSummary, error) {
	if ind == nil {
		return nil, ErrNilIndicators
	}
	if err := checkAligned(len(points), ind); err != nil {
		return nil, err
	}

	price, volume := math.NaN(), math.NaN()
	if n := len(points); n > 0 {
		price = points[n-1].Close
		volume = points[n-1].Volume
	}

	signals := []model.Signal{
		scoreRSI(ind.RSI),
		scoreMACD(ind.MACD),
		scoreMovingAverages(price, ind.SMA20, ind.SMA50, ind.SMA200),
		scoreBollinger(price, ind.Bollinger),
		scoreVolume(volume, ind.VolumeSMA),
	}

	direction, confidence := aggregate(signals)
	summary := &model.AnalysisSummary{
		Direction:  direction,
		Confidence: confidence,
		Signals:    signals,
	}
	summary.Summary = describe(direction, summary.Count(model.Bullish), summary.Count(model.Bearish))
	return summary, nil
}

func checkAligned(n int, ind *model.Indicators) error {
	for _, s := range ind.Named() {
		if len(s.Series) != n {
			return fmt.Errorf("%w: %s has %d values, want %d", ErrLengthMismatch, s.Name, len(s.Series), n)
		}
	}
	return nil
}

// aggregate turns weighted signals into a direction and a confidence in [0,100].
func aggregate(signals []model.Signal) (model.Direction, int) {
	var bullishWeight, bearishWeight, totalWeight float64
	for _, s := range signals {
		switch s.Direction {
		case model.Bullish:
			bullishWeight += s.Weight
		case model.Bearish:
			bearishWeight += s.Weight
		}
		totalWeight += s.Weight
	}

	if totalWeight == 0 {
		return model.Neutral, int(baseConfidence)
	}

	netScore := (bullishWeight - bearishWeight) / totalWeight
	var direction model.Direction
	var confidence float64
	switch {
	case netScore > directionThreshold:
		direction = model.Bullish
		confidence = math.Min(maxConfidence, baseConfidence+netScore*50)
	case netScore < -directionThreshold:
		direction = model.Bearish
		confidence = math.Min(maxConfidence, baseConfidence+math.Abs(netScore)*50)
	default:
		direction = model.Neutral
		confidence = baseConfidence - math.Abs(netScore)*30
	}
	return direction, int(math.Round(confidence))
}

func describe(direction model.Direction, bullish, bearish int) string {
	switch direction {
	case model.Bullish:
		s := fmt.Sprintf("Technical analysis suggests bullish momentum. %d indicators are positive", bullish)
		if bearish > 0 {
			s += fmt.Sprintf(", though %d indicator(s) warrant caution", bearish)
		}
		return s + "."
	case model.Bearish:
		s := fmt.Sprintf("Technical analysis suggests bearish pressure. %d indicators are negative", bearish)
		if bullish > 0 {
			s += fmt.Sprintf(", with %d potentially supportive signal(s)", bullish)
		}
		return s + "."
	}
	return fmt.Sprintf("Technical indicators are mixed with no clear directional bias (%d positive, %d negative). "+
		"Consider waiting for stronger signals before taking positions.", bullish, bearish)
}
