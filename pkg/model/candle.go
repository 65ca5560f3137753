package model

import (
	"math"
	"time"
)

// Candle is one OHLCV bar. Instances are immutable once constructed.
type Candle struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// Validate checks the OHLC invariant and the finiteness of every field.
// It returns InvalidCandle (wrapped) when violated.
func (c Candle) Validate() error {
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewInvalidCandleError("non-finite OHLCV value")
		}
	}
	if c.Volume < 0 {
		return NewInvalidCandleError("negative volume")
	}
	lowestBody := math.Min(c.Open, c.Close)
	highestBody := math.Max(c.Open, c.Close)
	if c.Low > lowestBody || highestBody > c.High || c.Low > c.High {
		return NewInvalidCandleError("OHLC invariant violated: low <= min(open,close) <= max(open,close) <= high")
	}
	return nil
}
