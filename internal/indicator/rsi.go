package indicator

import (
	"github.com/perpsignal/signal-engine/pkg/model"
)

const rsiPeriod = 14

// RSI implements Wilder's Relative Strength Index with oversold/overbought
// and price/RSI divergence signals.
type RSI struct {
	period           int
	divergenceWindow int

	prevClose    float64
	havePrev     bool
	avgGain      float64
	avgLoss      float64
	seeded       bool
	seedGains    []float64
	seedLosses   []float64
	ticks        int

	value float64

	closeHistory []float64
	rsiHistory   []float64

	// DivergencePresent reports whether the most recent tick flagged either
	// direction of RSI/price divergence. The aggregator's risk-level
	// escalation reads this.
	DivergencePresent bool
}

// NewRSI builds a 14-period RSI. divergenceWindow controls how far back the
// price/RSI divergence scan looks.
func NewRSI(divergenceWindow int) *RSI {
	return &RSI{period: rsiPeriod, divergenceWindow: divergenceWindow}
}

func (r *RSI) Name() string          { return "RSI(14)" }
func (r *RSI) Category() model.Category { return model.CategoryMomentum }
func (r *RSI) WarmupPeriod() int     { return r.period + r.divergenceWindow }
func (r *RSI) CurrentValue() float64 { return r.value }

func (r *RSI) Update(t Tick) *model.IndicatorSignal {
	r.DivergencePresent = false
	close := t.Candle.Close

	if r.havePrev {
		change := close - r.prevClose
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		if !r.seeded {
			r.seedGains = append(r.seedGains, gain)
			r.seedLosses = append(r.seedLosses, loss)
			if len(r.seedGains) == r.period {
				for _, g := range r.seedGains {
					r.avgGain += g
				}
				for _, l := range r.seedLosses {
					r.avgLoss += l
				}
				r.avgGain /= float64(r.period)
				r.avgLoss /= float64(r.period)
				r.seeded = true
			}
		} else {
			r.avgGain = (r.avgGain*float64(r.period-1) + gain) / float64(r.period)
			r.avgLoss = (r.avgLoss*float64(r.period-1) + loss) / float64(r.period)
		}
	}
	r.prevClose = close
	r.havePrev = true
	r.ticks++

	r.closeHistory = append(r.closeHistory, close)
	if len(r.closeHistory) > r.divergenceWindow+1 {
		r.closeHistory = r.closeHistory[len(r.closeHistory)-(r.divergenceWindow+1):]
	}

	if !r.seeded {
		return nil
	}

	if r.avgLoss == 0 {
		if r.avgGain == 0 {
			r.value = 50
		} else {
			r.value = 100
		}
	} else {
		rs := r.avgGain / r.avgLoss
		r.value = 100 - (100 / (1 + rs))
	}

	r.rsiHistory = append(r.rsiHistory, r.value)
	if len(r.rsiHistory) > r.divergenceWindow+1 {
		r.rsiHistory = r.rsiHistory[len(r.rsiHistory)-(r.divergenceWindow+1):]
	}

	if r.ticks < r.WarmupPeriod() {
		return nil
	}

	if sig := r.detectDivergence(); sig != nil {
		return sig
	}

	switch {
	case r.value < 30:
		return &model.IndicatorSignal{
			IndicatorName: r.Name(), Category: r.Category(), Kind: model.KindBullish,
			Strength: 1, Reason: "Oversold",
		}
	case r.value > 70:
		return &model.IndicatorSignal{
			IndicatorName: r.Name(), Category: r.Category(), Kind: model.KindBearish,
			Strength: -1, Reason: "Overbought",
		}
	}
	return nil
}

func (r *RSI) detectDivergence() *model.IndicatorSignal {
	n := r.divergenceWindow + 1
	if len(r.closeHistory) < n || len(r.rsiHistory) < n {
		return nil
	}
	closes := r.closeHistory
	rsis := r.rsiHistory

	minCloseIdx, maxCloseIdx := 0, 0
	for i, c := range closes[:len(closes)-1] {
		if c < closes[minCloseIdx] {
			minCloseIdx = i
		}
		if c > closes[maxCloseIdx] {
			maxCloseIdx = i
		}
	}

	lastClose := closes[len(closes)-1]
	lastRSI := rsis[len(rsis)-1]

	if lastClose < closes[minCloseIdx] && lastRSI > rsis[minCloseIdx] {
		r.DivergencePresent = true
		return &model.IndicatorSignal{
			IndicatorName: r.Name(), Category: r.Category(), Kind: model.KindBullish,
			Strength: 2, Reason: "Bullish divergence",
		}
	}
	if lastClose > closes[maxCloseIdx] && lastRSI < rsis[maxCloseIdx] {
		r.DivergencePresent = true
		return &model.IndicatorSignal{
			IndicatorName: r.Name(), Category: r.Category(), Kind: model.KindBearish,
			Strength: -2, Reason: "Bearish divergence",
		}
	}
	return nil
}
