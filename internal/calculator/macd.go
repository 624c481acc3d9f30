package calculator

import (
	"math"

	"StockPulse/internal/model"
)

const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
)

// MACD computes the 12/26/9 MACD.
//
// The signal line is the EMA of the MACD line with its undefined entries
// removed. Its values are laid back onto the positions where the MACD line
// is defined, in order, so the signal warm-up starts at the first defined
// MACD value rather than at index 0.
func MACD(series []float64) (model.MACDResult, error) {
	fast, err := EMA(series, macdFast)
	if err != nil {
		return model.MACDResult{}, err
	}
	slow, err := EMA(series, macdSlow)
	if err != nil {
		return model.MACDResult{}, err
	}

	n := len(series)
	line := make([]float64, n)
	var compact []float64
	for i := 0; i < n; i++ {
		if math.IsNaN(fast[i]) || math.IsNaN(slow[i]) {
			line[i] = math.NaN()
			continue
		}
		line[i] = fast[i] - slow[i]
		compact = append(compact, line[i])
	}

	signalEMA, err := EMA(compact, macdSignal)
	if err != nil {
		return model.MACDResult{}, err
	}

	signal := make([]float64, n)
	next := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(line[i]) || next >= len(signalEMA) {
			signal[i] = math.NaN()
			continue
		}
		signal[i] = signalEMA[next]
		next++
	}

	hist := make([]float64, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(line[i]) || math.IsNaN(signal[i]) {
			hist[i] = math.NaN()
			continue
		}
		hist[i] = line[i] - signal[i]
	}

	return model.MACDResult{MACD: line, Signal: signal, Histogram: hist}, nil
}
