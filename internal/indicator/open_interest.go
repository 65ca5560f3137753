package indicator

import "github.com/perpsignal/signal-engine/pkg/model"

// oiWindow mirrors fundingWindow: the number of exogenous open-interest
// observations the 24h change is computed over.
const oiWindow = 24

const oiChangeThreshold = 0.05 // 5%

// OpenInterest tracks percentage change in open interest over the tracked
// window and emits expansion/squeeze signals relative to concurrent price
// action.
type OpenInterest struct {
	oiValues    []float64
	closeValues []float64

	atr *ATR // self-contained, not shared with the category's ATR indicator

	ticks int
}

func NewOpenInterest() *OpenInterest {
	return &OpenInterest{atr: NewATR()}
}

func (o *OpenInterest) Name() string             { return "OpenInterest" }
func (o *OpenInterest) Category() model.Category { return model.CategoryPerp }
func (o *OpenInterest) WarmupPeriod() int        { return oiWindow }
func (o *OpenInterest) CurrentValue() float64 {
	if len(o.oiValues) == 0 {
		return 0
	}
	return o.oiValues[len(o.oiValues)-1]
}

func (o *OpenInterest) Update(t Tick) *model.IndicatorSignal {
	o.atr.Update(t)

	if !t.HasOpenInterest {
		return nil
	}
	o.ticks++

	o.oiValues = append(o.oiValues, t.OpenInterest)
	o.closeValues = append(o.closeValues, t.Candle.Close)
	if len(o.oiValues) > oiWindow {
		o.oiValues = o.oiValues[len(o.oiValues)-oiWindow:]
		o.closeValues = o.closeValues[len(o.closeValues)-oiWindow:]
	}

	if len(o.oiValues) < oiWindow {
		return nil
	}

	startOI, endOI := o.oiValues[0], o.oiValues[len(o.oiValues)-1]
	startClose, endClose := o.closeValues[0], o.closeValues[len(o.closeValues)-1]

	if startOI == 0 {
		return nil
	}
	oiChange := (endOI - startOI) / startOI
	priceChange := endClose - startClose
	atrValue := o.atr.CurrentValue()

	var out *model.IndicatorSignal
	switch {
	case oiChange >= oiChangeThreshold && priceChange > 0:
		out = &model.IndicatorSignal{
			IndicatorName: o.Name(), Category: o.Category(), Kind: model.KindBullish,
			Strength: 2, Reason: "Expansion",
		}
	case oiChange >= oiChangeThreshold && priceChange < 0:
		out = &model.IndicatorSignal{
			IndicatorName: o.Name(), Category: o.Category(), Kind: model.KindBearish,
			Strength: -2, Reason: "Expansion",
		}
	case oiChange <= -oiChangeThreshold:
		priceUnchanged := absFloat(priceChange) <= 0.5*atrValue
		if priceUnchanged {
			if priceChange >= 0 {
				out = &model.IndicatorSignal{
					IndicatorName: o.Name(), Category: o.Category(), Kind: model.KindBullish,
					Strength: 1, Reason: "Squeeze",
				}
			} else {
				out = &model.IndicatorSignal{
					IndicatorName: o.Name(), Category: o.Category(), Kind: model.KindBearish,
					Strength: -1, Reason: "Squeeze",
				}
			}
		}
	}

	if o.ticks < o.WarmupPeriod() {
		return nil
	}
	return out
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
