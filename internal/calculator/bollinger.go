package calculator

import (
	"fmt"
	"math"

	"StockPulse/internal/model"
)

// BollingerBands computes bands stdDev population standard deviations
// around the period SMA.
func BollingerBands(series []float64, period int, stdDev float64) (model.BollingerResult, error) {
	if stdDev < 0 || math.IsNaN(stdDev) {
		return model.BollingerResult{}, fmt.Errorf("%w: got %v", ErrInvalidStdDev, stdDev)
	}
	middle, err := SMA(series, period)
	if err != nil {
		return model.BollingerResult{}, err
	}

	upper := make([]float64, len(series))
	lower := make([]float64, len(series))
	for i := range series {
		if i < period-1 {
			upper[i] = math.NaN()
			lower[i] = math.NaN()
			continue
		}
		m := middle[i]
		variance := 0.0
		for _, p := range series[i-period+1 : i+1] {
			variance += (p - m) * (p - m)
		}
		std := math.Sqrt(variance / float64(period))
		upper[i] = m + stdDev*std
		lower[i] = m - stdDev*std
	}
	return model.BollingerResult{Upper: upper, Middle: middle, Lower: lower}, nil
}
