package indicator

import "github.com/perpsignal/signal-engine/pkg/model"

const (
	emaFastPeriod        = 20
	emaSlowPeriod        = 50
	emaTrendConfirmation = 20 // bars the EMAs must stay ordered for "Strong trend"
)

// EMACrossover implements the golden-cross / death-cross family with a
// trend-confirmation signal.
type EMACrossover struct {
	closes []float64

	fast, slow         float64
	haveFast, haveSlow bool

	prevSide int // -1 fast<slow, +1 fast>slow, 0 unknown
	sameSideRun int

	ticks int
}

func NewEMACrossover() *EMACrossover {
	return &EMACrossover{}
}

func (e *EMACrossover) Name() string             { return "EMACrossover(20,50)" }
func (e *EMACrossover) Category() model.Category { return model.CategoryTrend }
func (e *EMACrossover) WarmupPeriod() int        { return emaSlowPeriod }
func (e *EMACrossover) CurrentValue() float64    { return e.fast - e.slow }

func (e *EMACrossover) Update(t Tick) *model.IndicatorSignal {
	e.ticks++
	close := t.Candle.Close
	e.closes = append(e.closes, close)

	if !e.haveFast {
		if len(e.closes) == emaFastPeriod {
			e.fast = avg(e.closes[len(e.closes)-emaFastPeriod:])
			e.haveFast = true
		}
	} else {
		alpha := 2.0 / float64(emaFastPeriod+1)
		e.fast = alpha*close + (1-alpha)*e.fast
	}

	if !e.haveSlow {
		if len(e.closes) == emaSlowPeriod {
			e.slow = avg(e.closes[len(e.closes)-emaSlowPeriod:])
			e.haveSlow = true
		}
	} else {
		alpha := 2.0 / float64(emaSlowPeriod+1)
		e.slow = alpha*close + (1-alpha)*e.slow
	}

	if !e.haveFast || !e.haveSlow {
		return nil
	}

	side := 0
	switch {
	case e.fast > e.slow:
		side = 1
	case e.fast < e.slow:
		side = -1
	}

	var out *model.IndicatorSignal

	if e.prevSide != 0 && side != 0 && side != e.prevSide {
		if side > 0 {
			out = &model.IndicatorSignal{
				IndicatorName: e.Name(), Category: e.Category(), Kind: model.KindBullish,
				Strength: 2, Reason: "Golden cross",
			}
		} else {
			out = &model.IndicatorSignal{
				IndicatorName: e.Name(), Category: e.Category(), Kind: model.KindBearish,
				Strength: -2, Reason: "Death cross",
			}
		}
		e.sameSideRun = 0
	} else if side != 0 {
		e.sameSideRun++
	}

	if side != 0 {
		e.prevSide = side
	}

	if out == nil && e.sameSideRun >= emaTrendConfirmation {
		onTrendSide := (side > 0 && close > e.slow) || (side < 0 && close < e.slow)
		if onTrendSide {
			if side > 0 {
				out = &model.IndicatorSignal{
					IndicatorName: e.Name(), Category: e.Category(), Kind: model.KindBullish,
					Strength: 1, Reason: "Strong trend",
				}
			} else {
				out = &model.IndicatorSignal{
					IndicatorName: e.Name(), Category: e.Category(), Kind: model.KindBearish,
					Strength: -1, Reason: "Strong trend",
				}
			}
		}
	}

	if e.ticks < e.WarmupPeriod() {
		return nil
	}
	return out
}

func avg(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
