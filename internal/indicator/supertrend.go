package indicator

import "github.com/perpsignal/signal-engine/pkg/model"

const (
	superTrendATRPeriod = 10
	superTrendMultiplier = 3.0
)

// SuperTrend tracks upper/lower bands at HL2 +/- multiplier*ATR and the
// active trend side, emitting a signal on side flips and on continuation
// breaks. Its bands run off a private, Wilder-smoothed 10-period ATR rather
// than the 14-period category member, so the two never share state.
type SuperTrend struct {
	atr *ATR

	finalUpper, finalLower float64
	haveBands              bool

	side  int // +1 up, -1 down, 0 undetermined
	ticks int
}

func NewSuperTrend() *SuperTrend {
	return &SuperTrend{atr: NewATRWithPeriod(superTrendATRPeriod)}
}

func (s *SuperTrend) Name() string             { return "SuperTrend(10,3.0)" }
func (s *SuperTrend) Category() model.Category { return model.CategoryTrend }
func (s *SuperTrend) WarmupPeriod() int        { return superTrendATRPeriod + 1 }
func (s *SuperTrend) CurrentValue() float64 {
	if s.side > 0 {
		return s.finalLower
	}
	return s.finalUpper
}

func (s *SuperTrend) Update(t Tick) *model.IndicatorSignal {
	s.ticks++
	c := t.Candle

	s.atr.Update(t)
	atr := s.atr.CurrentValue()
	if atr == 0 {
		return nil
	}

	hl2 := (c.High + c.Low) / 2
	basicUpper := hl2 + superTrendMultiplier*atr
	basicLower := hl2 - superTrendMultiplier*atr

	if !s.haveBands {
		s.finalUpper = basicUpper
		s.finalLower = basicLower
		if c.Close <= s.finalUpper {
			s.side = -1
		} else {
			s.side = 1
		}
		s.haveBands = true
		return nil
	}

	prevUpper, prevLower := s.finalUpper, s.finalLower

	if basicUpper < prevUpper || c.Close > prevUpper {
		s.finalUpper = basicUpper
	} else {
		s.finalUpper = prevUpper
	}
	if basicLower > prevLower || c.Close < prevLower {
		s.finalLower = basicLower
	} else {
		s.finalLower = prevLower
	}

	prevSide := s.side
	switch {
	case prevSide > 0 && c.Close < s.finalLower:
		s.side = -1
	case prevSide < 0 && c.Close > s.finalUpper:
		s.side = 1
	default:
		s.side = prevSide
	}

	var out *model.IndicatorSignal
	if s.side != prevSide {
		if s.side > 0 {
			out = &model.IndicatorSignal{
				IndicatorName: s.Name(), Category: s.Category(), Kind: model.KindBullish,
				Strength: 2, Reason: "Trend flip to up",
			}
		} else {
			out = &model.IndicatorSignal{
				IndicatorName: s.Name(), Category: s.Category(), Kind: model.KindBearish,
				Strength: -2, Reason: "Trend flip to down",
			}
		}
	} else if s.side > 0 && c.Close > s.finalUpper {
		out = &model.IndicatorSignal{
			IndicatorName: s.Name(), Category: s.Category(), Kind: model.KindBullish,
			Strength: 1, Reason: "Continuation",
		}
	} else if s.side < 0 && c.Close < s.finalLower {
		out = &model.IndicatorSignal{
			IndicatorName: s.Name(), Category: s.Category(), Kind: model.KindBearish,
			Strength: -1, Reason: "Continuation",
		}
	}

	if s.ticks < s.WarmupPeriod() {
		return nil
	}
	return out
}
