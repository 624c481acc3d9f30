package model

import (
	"bytes"
	"math"
	"strconv"
)

// NullableSeries is an index-aligned indicator series. Positions that are
// not yet computable hold NaN and are encoded as JSON null.
type NullableSeries []float64

// MarshalJSON encodes NaN and infinities as null.
func (s NullableSeries) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b.WriteString("null")
			continue
		}
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

// MACDResult holds the three MACD series.
type MACDResult struct {
	MACD      NullableSeries `json:"macd"`
	Signal    NullableSeries `json:"signal"`
	Histogram NullableSeries `json:"histogram"`
}

// BollingerResult holds the three Bollinger band series. Middle is the SMA.
type BollingerResult struct {
	Upper  NullableSeries `json:"upper"`
	Middle NullableSeries `json:"middle"`
	Lower  NullableSeries `json:"lower"`
}

// Indicators holds every computed indicator series, each the same length as
// the price series it was computed from.
type Indicators struct {
	SMA20     NullableSeries  `json:"sma20"`
	SMA50     NullableSeries  `json:"sma50"`
	SMA200    NullableSeries  `json:"sma200"`
	EMA12     NullableSeries  `json:"ema12"`
	EMA26     NullableSeries  `json:"ema26"`
	RSI       NullableSeries  `json:"rsi"`
	MACD      MACDResult      `json:"macd"`
	Bollinger BollingerResult `json:"bollingerBands"`
	VolumeSMA NullableSeries  `json:"volumeSma"`
}

// Named returns every series keyed by a stable name, in display order.
func (ind *Indicators) Named() []NamedSeries {
	return []NamedSeries{
		{"sma20", ind.SMA20},
		{"sma50", ind.SMA50},
		{"sma200", ind.SMA200},
		{"ema12", ind.EMA12},
		{"ema26", ind.EMA26},
		{"rsi", ind.RSI},
		{"macd", ind.MACD.MACD},
		{"macd_signal", ind.MACD.Signal},
		{"macd_histogram", ind.MACD.Histogram},
		{"bb_upper", ind.Bollinger.Upper},
		{"bb_middle", ind.Bollinger.Middle},
		{"bb_lower", ind.Bollinger.Lower},
		{"volume_sma", ind.VolumeSMA},
	}
}

// NamedSeries pairs a series with its name.
type NamedSeries struct {
	Name   string
	Series NullableSeries
}

