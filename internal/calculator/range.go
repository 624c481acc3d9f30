package calculator

import (
	"errors"
	"math"

	"StockPulse/internal/model"
)

// TradingDays52w is the number of sessions in the 52-week range.
const TradingDays52w = 252

// Range scans the most recent n bars and returns the highest high and lowest low.
func Range(points []model.PricePoint, n int) (high, low float64, err error) {
	if len(points) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	if n <= 0 {
		return 0, 0, ErrInvalidPeriod
	}
	start := len(points) - n
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range points[start:] {
		if p.High > high {
			high = p.High
		}
		if p.Low < low {
			low = p.Low
		}
	}
	return high, low, nil
}

// Position returns where current sits within [low, high], clamped to 0.0~1.0.
func Position(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
