package indicator

import (
	"github.com/perpsignal/signal-engine/internal/numeric"
	"github.com/perpsignal/signal-engine/pkg/model"
)

const (
	bollingerPeriod    = 20
	bollingerStdDevs   = 2.0
	bollingerMinWindow = 20 // bars of band-width history tracked for the squeeze threshold
)

// Bollinger implements basis/upper/lower breakout signals plus informational
// squeeze and mean-reversion signals.
type Bollinger struct {
	closes []float64

	widthHistory []float64

	prevExtremeSide int // -1 prior extreme was below lower band, +1 above upper, 0 none yet

	ticks int

	// SqueezeActive and MeanReversion report whether the most recent tick
	// carried those informational flags. They never affect category score.
	SqueezeActive bool
	MeanReversion bool
}

func NewBollinger() *Bollinger {
	return &Bollinger{}
}

func (b *Bollinger) Name() string             { return "BollingerBands(20,2sigma)" }
func (b *Bollinger) Category() model.Category { return model.CategoryVolatility }
func (b *Bollinger) WarmupPeriod() int        { return bollingerPeriod }
func (b *Bollinger) CurrentValue() float64 {
	basis, ok := numeric.SMA(b.closes, bollingerPeriod)
	if !ok {
		return 0
	}
	return basis
}

func (b *Bollinger) Update(t Tick) *model.IndicatorSignal {
	b.ticks++
	b.SqueezeActive = false
	b.MeanReversion = false

	close := t.Candle.Close
	b.closes = append(b.closes, close)
	if len(b.closes) > bollingerPeriod {
		b.closes = b.closes[len(b.closes)-bollingerPeriod:]
	}

	basis, ok := numeric.SMA(b.closes, bollingerPeriod)
	if !ok {
		return nil
	}
	stddev, _ := numeric.StdDev(b.closes, bollingerPeriod)
	upper := basis + bollingerStdDevs*stddev
	lower := basis - bollingerStdDevs*stddev
	width := upper - lower

	b.widthHistory = append(b.widthHistory, width)
	if len(b.widthHistory) > bollingerMinWindow {
		b.widthHistory = b.widthHistory[len(b.widthHistory)-bollingerMinWindow:]
	}

	var out *model.IndicatorSignal

	switch {
	case close < lower:
		out = &model.IndicatorSignal{
			IndicatorName: b.Name(), Category: b.Category(), Kind: model.KindBullish,
			Strength: 1, Reason: "Lower breakout",
		}
		b.prevExtremeSide = -1
	case close > upper:
		out = &model.IndicatorSignal{
			IndicatorName: b.Name(), Category: b.Category(), Kind: model.KindBearish,
			Strength: -1, Reason: "Upper breakout",
		}
		b.prevExtremeSide = 1
	default:
		if b.prevExtremeSide == -1 && close > basis {
			out = &model.IndicatorSignal{
				IndicatorName: b.Name(), Category: b.Category(), Kind: model.KindInformational,
				Strength: 0, Reason: "Mean reversion",
			}
			b.MeanReversion = true
			b.prevExtremeSide = 0
		} else if b.prevExtremeSide == 1 && close < basis {
			out = &model.IndicatorSignal{
				IndicatorName: b.Name(), Category: b.Category(), Kind: model.KindInformational,
				Strength: 0, Reason: "Mean reversion",
			}
			b.MeanReversion = true
			b.prevExtremeSide = 0
		}
	}

	if basis != 0 && len(b.widthHistory) == bollingerMinWindow {
		minWidth := b.widthHistory[0]
		for _, w := range b.widthHistory {
			if w < minWidth {
				minWidth = w
			}
		}
		if width/basis < (minWidth/basis)*1.1 {
			b.SqueezeActive = true
			if out == nil {
				out = &model.IndicatorSignal{
					IndicatorName: b.Name(), Category: b.Category(), Kind: model.KindInformational,
					Strength: 0, Reason: "Squeeze",
				}
			}
		}
	}

	if b.ticks < b.WarmupPeriod() {
		return nil
	}
	return out
}
