package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"StockPulse/internal/model"
)

var nan = math.NaN()

func TestScoreRSI_Thresholds(t *testing.T) {
	tests := []struct {
		rsi       float64
		direction model.Direction
		weight    float64
		reason    string
	}{
		{nan, model.Neutral, 0, "Insufficient data"},
		{85, model.Bearish, 2, "RSI at 85.0 - Overbought territory"},
		{70, model.Bullish, 1, "RSI at 70.0 - Strong momentum"},
		{65, model.Bullish, 1, "RSI at 65.0 - Strong momentum"},
		{60, model.Neutral, 0, "RSI at 60.0 - Neutral zone"},
		{50, model.Neutral, 0, "RSI at 50.0 - Neutral zone"},
		{40, model.Neutral, 0, "RSI at 40.0 - Neutral zone"},
		{35, model.Bearish, 1, "RSI at 35.0 - Weak momentum"},
		{30, model.Bearish, 1, "RSI at 30.0 - Weak momentum"},
		{12.34, model.Bullish, 2, "RSI at 12.3 - Oversold territory"},
	}
	for _, tt := range tests {
		sig := scoreRSI([]float64{nan, tt.rsi})
		assert.Equal(t, "RSI", sig.Indicator)
		assert.Equal(t, tt.direction, sig.Direction, "rsi %v", tt.rsi)
		assert.Equal(t, tt.weight, sig.Weight, "rsi %v", tt.rsi)
		assert.Equal(t, tt.reason, sig.Reason)
	}
}

func TestScoreRSI_Empty(t *testing.T) {
	sig := scoreRSI(nil)
	assert.Equal(t, model.Neutral, sig.Direction)
	assert.Equal(t, "Insufficient data", sig.Reason)
}

func macd(line, signal, hist []float64) model.MACDResult {
	return model.MACDResult{MACD: line, Signal: signal, Histogram: hist}
}

func TestScoreMACD(t *testing.T) {
	tests := []struct {
		name      string
		in        model.MACDResult
		direction model.Direction
		weight    float64
	}{
		{"undefined", macd([]float64{nan, nan}, []float64{nan, nan}, []float64{nan, nan}), model.Neutral, 0},
		{"signal undefined", macd([]float64{1, 2}, []float64{nan, nan}, []float64{nan, nan}), model.Neutral, 0},
		{"bullish crossover", macd([]float64{1, 2}, []float64{1.5, 1.5}, []float64{-0.5, 0.5}), model.Bullish, 3},
		{"bullish crossover from zero", macd([]float64{1, 2}, []float64{1, 1.5}, []float64{0, 0.5}), model.Bullish, 3},
		{"bearish crossover", macd([]float64{2, 1}, []float64{1.5, 1.5}, []float64{0.5, -0.5}), model.Bearish, 3},
		{"bullish expansion", macd([]float64{2, 3}, []float64{1.5, 2}, []float64{0.5, 1}), model.Bullish, 1.5},
		{"bearish expansion", macd([]float64{1, 0}, []float64{1.5, 1}, []float64{-0.5, -1}), model.Bearish, 1.5},
		{"bullish contraction", macd([]float64{3, 3}, []float64{2, 2.5}, []float64{1, 0.5}), model.Neutral, 0},
		{"flat", macd([]float64{1, 1}, []float64{1, 1}, []float64{0, 0}), model.Neutral, 0},
		{"first defined histogram", macd([]float64{nan, 2}, []float64{nan, 1}, []float64{nan, 1}), model.Neutral, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := scoreMACD(tt.in)
			assert.Equal(t, tt.direction, sig.Direction)
			assert.Equal(t, tt.weight, sig.Weight)
		})
	}
}

func TestScoreMovingAverages(t *testing.T) {
	tests := []struct {
		name                 string
		price                float64
		sma20, sma50, sma200 float64
		direction            model.Direction
		weight               float64
		reason               string
	}{
		{"golden cross overrides tally", 10, 50, 40, 30, model.Bullish, 2.5, "Golden Cross pattern - 50 SMA above 200 SMA"},
		{"death cross", 100, 50, 30, 40, model.Bearish, 2.5, "Death Cross pattern - 50 SMA below 200 SMA"},
		{"equal long averages fall back to tally", 100, 50, 40, 40, model.Bullish, 1.5, "Price above 3 of 3 moving averages"},
		{"above sma20 only", 100, 90, nan, nan, model.Bullish, 0.5, "Price above 1 of 3 moving averages"},
		{"below two", 100, 110, 120, nan, model.Bearish, 1, "Price below 2 of 3 moving averages"},
		{"equal price counts bearish", 100, 100, nan, nan, model.Bearish, 0.5, "Price below 1 of 3 moving averages"},
		{"none defined", 100, nan, nan, nan, model.Neutral, 0, "Mixed signals from moving averages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := scoreMovingAverages(tt.price, []float64{tt.sma20}, []float64{tt.sma50}, []float64{tt.sma200})
			assert.Equal(t, "Moving Averages", sig.Indicator)
			assert.Equal(t, tt.direction, sig.Direction)
			assert.Equal(t, tt.weight, sig.Weight)
			assert.Equal(t, tt.reason, sig.Reason)
		})
	}
}

func TestScoreBollinger(t *testing.T) {
	bands := func(upper, lower float64) model.BollingerResult {
		return model.BollingerResult{
			Upper:  []float64{upper},
			Middle: []float64{(upper + lower) / 2},
			Lower:  []float64{lower},
		}
	}
	tests := []struct {
		name      string
		price     float64
		bands     model.BollingerResult
		direction model.Direction
		weight    float64
	}{
		{"undefined", 100, bands(nan, nan), model.Neutral, 0},
		{"above upper", 111, bands(110, 90), model.Bearish, 2},
		{"below lower", 89, bands(110, 90), model.Bullish, 2},
		{"near upper", 107, bands(110, 90), model.Bearish, 1},
		{"near lower", 92, bands(110, 90), model.Bullish, 1},
		{"middle", 100, bands(110, 90), model.Neutral, 0},
		{"at upper edge", 110, bands(110, 90), model.Bearish, 1},
		{"zero width", 100, bands(100, 100), model.Neutral, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := scoreBollinger(tt.price, tt.bands)
			assert.Equal(t, tt.direction, sig.Direction)
			assert.Equal(t, tt.weight, sig.Weight)
		})
	}
}

func TestScoreVolume(t *testing.T) {
	tests := []struct {
		name      string
		volume    float64
		avg       float64
		direction model.Direction
		weight    float64
		reason    string
	}{
		{"undefined", 100, nan, model.Neutral, 0, "Insufficient data"},
		{"high interest", 200, 100, model.Bullish, 1.5, "Volume 2.0x above average - high interest"},
		{"low interest is not bearish", 40, 100, model.Neutral, 0, "Volume 0.4x below average - low interest"},
		{"normal", 100, 100, model.Neutral, 0, "Normal volume levels"},
		{"exactly 1.5", 150, 100, model.Neutral, 0, "Normal volume levels"},
		{"zero average", 100, 0, model.Neutral, 0, "No average volume"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := scoreVolume(tt.volume, []float64{tt.avg})
			assert.Equal(t, tt.direction, sig.Direction)
			assert.Equal(t, tt.weight, sig.Weight)
			assert.Equal(t, tt.reason, sig.Reason)
		})
	}
}
