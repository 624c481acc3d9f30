package strategy

import (
	"fmt"
	"math"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

const (
	nameRSI       = "RSI"
	nameMACD      = "MACD"
	nameMA        = "Moving Averages"
	nameBollinger = "Bollinger Bands"
	nameVolume    = "Volume"

	reasonInsufficient = "Insufficient data"
)

func insufficient(name string) model.Signal {
	return model.Signal{Indicator: name, Direction: model.Neutral, Weight: 0, Reason: reasonInsufficient}
}

// scoreRSI flags overbought/oversold levels and momentum zones.
func scoreRSI(rsi []float64) model.Signal {
	current := calculator.Last(rsi)
	if math.IsNaN(current) {
		return insufficient(nameRSI)
	}

	sig := model.Signal{Indicator: nameRSI}
	switch {
	case current > 70:
		sig.Direction, sig.Weight = model.Bearish, 2
		sig.Reason = fmt.Sprintf("RSI at %.1f - Overbought territory", current)
	case current < 30:
		sig.Direction, sig.Weight = model.Bullish, 2
		sig.Reason = fmt.Sprintf("RSI at %.1f - Oversold territory", current)
	case current > 60:
		sig.Direction, sig.Weight = model.Bullish, 1
		sig.Reason = fmt.Sprintf("RSI at %.1f - Strong momentum", current)
	case current < 40:
		sig.Direction, sig.Weight = model.Bearish, 1
		sig.Reason = fmt.Sprintf("RSI at %.1f - Weak momentum", current)
	default:
		sig.Direction = model.Neutral
		sig.Reason = fmt.Sprintf("RSI at %.1f - Neutral zone", current)
	}
	return sig
}

// scoreMACD looks for a crossover on the latest bar, then for histogram expansion.
// A missing previous histogram value compares false on every branch.
func scoreMACD(macd model.MACDResult) model.Signal {
	n := len(macd.Histogram)
	line := calculator.Last(macd.MACD)
	signal := calculator.Last(macd.Signal)
	hist := calculator.At(macd.Histogram, n-1)
	prev := calculator.At(macd.Histogram, n-2)

	if math.IsNaN(line) || math.IsNaN(signal) {
		return insufficient(nameMACD)
	}

	switch {
	case line > signal && hist > 0 && prev <= 0:
		return model.Signal{Indicator: nameMACD, Direction: model.Bullish, Weight: 3, Reason: "MACD bullish crossover detected"}
	case line < signal && hist < 0 && prev >= 0:
		return model.Signal{Indicator: nameMACD, Direction: model.Bearish, Weight: 3, Reason: "MACD bearish crossover detected"}
	case hist > 0 && hist > prev:
		return model.Signal{Indicator: nameMACD, Direction: model.Bullish, Weight: 1.5, Reason: "MACD histogram expanding bullishly"}
	case hist < 0 && hist < prev:
		return model.Signal{Indicator: nameMACD, Direction: model.Bearish, Weight: 1.5, Reason: "MACD histogram expanding bearishly"}
	}
	return model.Signal{Indicator: nameMACD, Direction: model.Neutral, Weight: 0, Reason: "MACD showing no clear trend"}
}

// scoreMovingAverages tallies price against SMA20/50/200. A golden or death
// cross between SMA50 and SMA200 overrides the tally.
func scoreMovingAverages(price float64, sma20, sma50, sma200 []float64) model.Signal {
	s20 := calculator.Last(sma20)
	s50 := calculator.Last(sma50)
	s200 := calculator.Last(sma200)

	var bullish, bearish int
	for _, ma := range []float64{s20, s50, s200} {
		if math.IsNaN(ma) {
			continue
		}
		if price > ma {
			bullish++
		} else {
			bearish++
		}
	}

	if !math.IsNaN(s50) && !math.IsNaN(s200) {
		if s50 > s200 {
			return model.Signal{Indicator: nameMA, Direction: model.Bullish, Weight: 2.5, Reason: "Golden Cross pattern - 50 SMA above 200 SMA"}
		}
		if s50 < s200 {
			return model.Signal{Indicator: nameMA, Direction: model.Bearish, Weight: 2.5, Reason: "Death Cross pattern - 50 SMA below 200 SMA"}
		}
	}

	switch {
	case bullish > bearish:
		return model.Signal{
			Indicator: nameMA, Direction: model.Bullish, Weight: 0.5 * float64(bullish),
			Reason: fmt.Sprintf("Price above %d of 3 moving averages", bullish),
		}
	case bearish > bullish:
		return model.Signal{
			Indicator: nameMA, Direction: model.Bearish, Weight: 0.5 * float64(bearish),
			Reason: fmt.Sprintf("Price below %d of 3 moving averages", bearish),
		}
	}
	return model.Signal{Indicator: nameMA, Direction: model.Neutral, Weight: 0, Reason: "Mixed signals from moving averages"}
}

// scoreBollinger places the price relative to the bands.
func scoreBollinger(price float64, bands model.BollingerResult) model.Signal {
	upper := calculator.Last(bands.Upper)
	lower := calculator.Last(bands.Lower)
	if math.IsNaN(upper) || math.IsNaN(lower) {
		return insufficient(nameBollinger)
	}

	switch {
	case price > upper:
		return model.Signal{Indicator: nameBollinger, Direction: model.Bearish, Weight: 2, Reason: "Price above upper band - potential reversal"}
	case price < lower:
		return model.Signal{Indicator: nameBollinger, Direction: model.Bullish, Weight: 2, Reason: "Price below lower band - potential bounce"}
	}

	width := upper - lower
	if width > 0 {
		position := (price - lower) / width
		switch {
		case position > 0.8:
			return model.Signal{Indicator: nameBollinger, Direction: model.Bearish, Weight: 1, Reason: "Price near upper band"}
		case position < 0.2:
			return model.Signal{Indicator: nameBollinger, Direction: model.Bullish, Weight: 1, Reason: "Price near lower band"}
		}
	}
	return model.Signal{Indicator: nameBollinger, Direction: model.Neutral, Weight: 0, Reason: "Price within normal range"}
}

// scoreVolume compares the latest volume to its 20-day average. Low volume
// is reported but never counted as bearish.
func scoreVolume(volume float64, volumeSMA []float64) model.Signal {
	avg := calculator.Last(volumeSMA)
	if math.IsNaN(avg) {
		return insufficient(nameVolume)
	}
	if avg <= 0 {
		return model.Signal{Indicator: nameVolume, Direction: model.Neutral, Weight: 0, Reason: "No average volume"}
	}

	ratio := volume / avg
	switch {
	case ratio > 1.5:
		return model.Signal{
			Indicator: nameVolume, Direction: model.Bullish, Weight: 1.5,
			Reason: fmt.Sprintf("Volume %.1fx above average - high interest", ratio),
		}
	case ratio < 0.5:
		return model.Signal{
			Indicator: nameVolume, Direction: model.Neutral, Weight: 0,
			Reason: fmt.Sprintf("Volume %.1fx below average - low interest", ratio),
		}
	}
	return model.Signal{Indicator: nameVolume, Direction: model.Neutral, Weight: 0, Reason: "Normal volume levels"}
}
