package collector

import (
	"StockPulse/internal/model"
)

// avgVolumeDays is the trailing window for Quote.AvgVolume.
const avgVolumeDays = 10

// completeQuote fills the quote fields a source did not report from the
// daily bars. A nil quote is built entirely from the bars.
func completeQuote(q *model.Quote, symbol string, points []model.PricePoint) *model.Quote {
	if q == nil {
		q = &model.Quote{}
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	if q.Name == "" {
		q.Name = q.Symbol
	}
	if q.Exchange == "" {
		q.Exchange = "Unknown"
	}

	if n := len(points); n > 0 {
		last := points[n-1]
		if q.Price == 0 {
			q.Price = last.Close
		}
		if q.High == 0 {
			q.High = last.High
		}
		if q.Low == 0 {
			q.Low = last.Low
		}
		if q.Open == 0 {
			q.Open = last.Open
		}
		if q.Volume == 0 {
			q.Volume = last.Volume
		}
		if q.PreviousClose == 0 && n > 1 {
			q.PreviousClose = points[n-2].Close
		}
		if q.AvgVolume == 0 {
			window := points[max(0, n-avgVolumeDays):]
			sum := 0.0
			for _, p := range window {
				sum += p.Volume
			}
			q.AvgVolume = sum / float64(len(window))
		}
	}

	if q.PreviousClose != 0 {
		q.Change = q.Price - q.PreviousClose
		q.ChangePercent = q.Change / q.PreviousClose * 100
	}
	return q
}
