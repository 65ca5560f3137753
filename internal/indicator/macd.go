package indicator

import (
	"math"

	"github.com/perpsignal/signal-engine/pkg/model"
)

const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
)

// MACD implements Moving Average Convergence Divergence with sign-flip
// crossover and histogram-momentum signals.
type MACD struct {
	fastAlpha, slowAlpha, signalAlpha float64

	closes []float64

	emaFast, emaSlow   float64
	haveFast, haveSlow bool

	line        float64
	haveLine    bool
	signalLine  float64
	haveSignal  bool
	signalSeeds []float64

	prevHistogram    float64
	havePrevHist     bool
	prevSide         int // -1, 0, +1: sign of (line - signal) last tick
	ticks            int
}

func NewMACD() *MACD {
	return &MACD{
		fastAlpha:   2.0 / float64(macdFast+1),
		slowAlpha:   2.0 / float64(macdSlow+1),
		signalAlpha: 2.0 / float64(macdSignal+1),
	}
}

func (m *MACD) Name() string             { return "MACD(12,26,9)" }
func (m *MACD) Category() model.Category { return model.CategoryMomentum }
func (m *MACD) WarmupPeriod() int        { return macdSlow + macdSignal }
func (m *MACD) CurrentValue() float64    { return m.line }

func (m *MACD) Update(t Tick) *model.IndicatorSignal {
	m.ticks++
	close := t.Candle.Close
	m.closes = append(m.closes, close)

	if !m.haveFast {
		if len(m.closes) == macdFast {
			sum := 0.0
			for _, c := range m.closes {
				sum += c
			}
			m.emaFast = sum / float64(macdFast)
			m.haveFast = true
		}
	} else {
		m.emaFast = m.fastAlpha*close + (1-m.fastAlpha)*m.emaFast
	}

	if !m.haveSlow {
		if len(m.closes) == macdSlow {
			sum := 0.0
			for _, c := range m.closes[len(m.closes)-macdSlow:] {
				sum += c
			}
			m.emaSlow = sum / float64(macdSlow)
			m.haveSlow = true
		}
	} else {
		m.emaSlow = m.slowAlpha*close + (1-m.slowAlpha)*m.emaSlow
	}

	if !m.haveFast || !m.haveSlow {
		return nil
	}

	m.line = m.emaFast - m.emaSlow
	m.haveLine = true

	if !m.haveSignal {
		m.signalSeeds = append(m.signalSeeds, m.line)
		if len(m.signalSeeds) == macdSignal {
			sum := 0.0
			for _, v := range m.signalSeeds {
				sum += v
			}
			m.signalLine = sum / float64(macdSignal)
			m.haveSignal = true
		}
	} else {
		m.signalLine = m.signalAlpha*m.line + (1-m.signalAlpha)*m.signalLine
	}

	if !m.haveSignal {
		return nil
	}

	histogram := m.line - m.signalLine
	side := 0
	switch {
	case histogram > 0:
		side = 1
	case histogram < 0:
		side = -1
	}

	var out *model.IndicatorSignal

	if m.prevSide != 0 && side != 0 && side != m.prevSide {
		if side > 0 {
			out = &model.IndicatorSignal{
				IndicatorName: m.Name(), Category: m.Category(), Kind: model.KindBullish,
				Strength: 2, Reason: "Bullish crossover",
			}
		} else {
			out = &model.IndicatorSignal{
				IndicatorName: m.Name(), Category: m.Category(), Kind: model.KindBearish,
				Strength: -2, Reason: "Bearish crossover",
			}
		}
	} else if m.havePrevHist && side != 0 && math.Abs(histogram) > math.Abs(m.prevHistogram) {
		if side > 0 {
			out = &model.IndicatorSignal{
				IndicatorName: m.Name(), Category: m.Category(), Kind: model.KindBullish,
				Strength: 1, Reason: "Momentum",
			}
		} else {
			out = &model.IndicatorSignal{
				IndicatorName: m.Name(), Category: m.Category(), Kind: model.KindBearish,
				Strength: -1, Reason: "Momentum",
			}
		}
	}

	m.prevHistogram = histogram
	m.havePrevHist = true
	if side != 0 {
		m.prevSide = side
	}

	if m.ticks < m.WarmupPeriod() {
		return nil
	}
	return out
}
