package calculator

import (
	"fmt"

	"StockPulse/internal/model"
)

// CalculateAll computes the full indicator bundle for a price series.
// Every returned series has len(points) entries.
func CalculateAll(points []model.PricePoint) (*model.Indicators, error) {
	if len(points) > MaxSeriesLength {
		return nil, fmt.Errorf("%w: %d > %d", ErrSeriesTooLong, len(points), MaxSeriesLength)
	}
	closes := Closes(points)
	volumes := Volumes(points)

	ind := &model.Indicators{}
	var err error
	if ind.SMA20, err = SMA(closes, 20); err != nil {
		return nil, fmt.Errorf("sma20: %w", err)
	}
	if ind.SMA50, err = SMA(closes, 50); err != nil {
		return nil, fmt.Errorf("sma50: %w", err)
	}
	if ind.SMA200, err = SMA(closes, 200); err != nil {
		return nil, fmt.Errorf("sma200: %w", err)
	}
	if ind.EMA12, err = EMA(closes, 12); err != nil {
		return nil, fmt.Errorf("ema12: %w", err)
	}
	if ind.EMA26, err = EMA(closes, 26); err != nil {
		return nil, fmt.Errorf("ema26: %w", err)
	}
	if ind.RSI, err = RSI(closes, 14); err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	if ind.MACD, err = MACD(closes); err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}
	if ind.Bollinger, err = BollingerBands(closes, 20, 2); err != nil {
		return nil, fmt.Errorf("bollinger: %w", err)
	}
	if ind.VolumeSMA, err = SMA(volumes, 20); err != nil {
		return nil, fmt.Errorf("volume sma: %w", err)
	}
	return ind, nil
}
