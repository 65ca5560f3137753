package indicator

import (
	"fmt"

	"github.com/perpsignal/signal-engine/pkg/model"
)

const atrPeriod = 14

// ATR implements Wilder-smoothed Average True Range. It emits no directional
// signal; it exposes CurrentValue for SL/TP and Regime for risk
// classification.
type ATR struct {
	period int

	prevClose float64
	havePrev  bool

	seedTRs []float64
	value   float64
	seeded  bool
	ticks   int

	lastClose float64
}

// NewATR builds the standard 14-period Average True Range.
func NewATR() *ATR {
	return NewATRWithPeriod(atrPeriod)
}

// NewATRWithPeriod builds a Wilder-smoothed ATR over an arbitrary period, for
// collaborators that need a shorter or longer window than the category
// member's default 14 (SuperTrend's bands use a 10-period ATR).
func NewATRWithPeriod(period int) *ATR {
	return &ATR{period: period}
}

func (a *ATR) Name() string             { return fmt.Sprintf("ATR(%d)", a.period) }
func (a *ATR) Category() model.Category { return model.CategoryVolatility }
func (a *ATR) WarmupPeriod() int        { return a.period }
func (a *ATR) CurrentValue() float64    { return a.value }

// Regime classifies ATR/close using a fixed set of volatility bands.
func (a *ATR) Regime() model.ATRRegime {
	if a.lastClose == 0 {
		return model.ATRRegimeLow
	}
	return model.ClassifyATRRegime(a.value / a.lastClose)
}

func (a *ATR) Update(t Tick) *model.IndicatorSignal {
	a.ticks++
	c := t.Candle
	a.lastClose = c.Close

	tr := trueRangeFor(c, a.prevClose, a.havePrev)
	a.prevClose = c.Close
	a.havePrev = true

	if !a.seeded {
		a.seedTRs = append(a.seedTRs, tr)
		if len(a.seedTRs) == a.period {
			a.value = avg(a.seedTRs)
			a.seeded = true
		}
		return nil
	}

	a.value = (a.value*float64(a.period-1) + tr) / float64(a.period)
	return nil
}

// trueRangeFor computes the classic high/low/prev-close true range, treating
// the first observed candle (havePrev false) as just its own high-low range.
func trueRangeFor(c model.Candle, prevClose float64, havePrev bool) float64 {
	if !havePrev {
		return c.High - c.Low
	}
	hl := c.High - c.Low
	hc := c.High - prevClose
	if hc < 0 {
		hc = -hc
	}
	lc := c.Low - prevClose
	if lc < 0 {
		lc = -lc
	}
	m := hl
	if hc > m {
		m = hc
	}
	if lc > m {
		m = lc
	}
	return m
}
