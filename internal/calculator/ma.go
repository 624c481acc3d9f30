package calculator

import (
	"errors"
	"fmt"
	"math"

	"StockPulse/internal/model"
)

var (
	// ErrInvalidPeriod is returned when a lookback period is not positive.
	ErrInvalidPeriod = errors.New("period must be positive")
	// ErrInvalidStdDev is returned for a negative band multiplier.
	ErrInvalidStdDev = errors.New("standard deviation multiplier must not be negative")
	// ErrSeriesTooLong is returned when input exceeds MaxSeriesLength.
	ErrSeriesTooLong = errors.New("series exceeds maximum length")
)

// MaxSeriesLength bounds the number of points accepted by CalculateAll.
const MaxSeriesLength = 10000

func checkPeriod(period int) error {
	if period <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}
	return nil
}

// SMA computes the simple moving average at every index of series.
// Indices before the first full window hold NaN.
func SMA(series []float64, period int) ([]float64, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	out := make([]float64, len(series))
	for i := range series {
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = mean(series[i-period+1 : i+1])
	}
	return out, nil
}

// EMA computes the exponential moving average seeded with the SMA of the
// first period values, which is emitted at index period-1.
func EMA(series []float64, period int) ([]float64, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	out := make([]float64, len(series))
	k := 2 / float64(period+1)

	var ema float64
	if len(series) >= period {
		ema = mean(series[:period])
	}
	for i := range series {
		switch {
		case i < period-1:
			out[i] = math.NaN()
		case i == period-1:
			out[i] = ema
		default:
			ema = (series[i]-ema)*k + ema
			out[i] = ema
		}
	}
	return out, nil
}

func mean(window []float64) float64 {
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}

// Closes extracts the close column.
func Closes(points []model.PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Close
	}
	return out
}

// Volumes extracts the volume column.
func Volumes(points []model.PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Volume
	}
	return out
}

// Last returns the final value of series, or NaN if it is empty.
func Last(series []float64) float64 {
	return At(series, len(series)-1)
}

// At returns series[i], or NaN when i is out of range.
func At(series []float64, i int) float64 {
	if i < 0 || i >= len(series) {
		return math.NaN()
	}
	return series[i]
}
