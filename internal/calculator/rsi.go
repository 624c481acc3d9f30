package calculator

import "math"

// RSI computes the relative strength index at every index of series.
//
// The average gain and loss at index i are plain means of the period
// day-over-day changes ending at i; no Wilder smoothing is applied.
// Indices below period hold NaN.
func RSI(series []float64, period int) ([]float64, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	var gains, losses []float64
	for i := 1; i < len(series); i++ {
		change := series[i] - series[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else if change < 0 {
			loss = -change
		}
		gains = append(gains, gain)
		losses = append(losses, loss)
	}

	out := make([]float64, len(series))
	for i := range series {
		if i < period {
			out[i] = math.NaN()
			continue
		}
		avgGain := mean(gains[i-period : i])
		avgLoss := mean(losses[i-period : i])
		if avgLoss == 0 {
			out[i] = 100
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out, nil
}
