package indicator

import "github.com/perpsignal/signal-engine/pkg/model"

const volumeProfileBuckets = 24

// VolumeProfile bins the last N bars' closes into price buckets weighted by
// volume; the bucket with the most volume is the Point of Control (spec
// §4.2 Volume Profile).
type VolumeProfile struct {
	window  int
	candles []model.Candle

	atr *ATR // self-contained local ATR reading, not shared with the ATR category member

	ticks int
}

func NewVolumeProfile(window int) *VolumeProfile {
	return &VolumeProfile{window: window, atr: NewATR()}
}

func (v *VolumeProfile) Name() string             { return "VolumeProfile" }
func (v *VolumeProfile) Category() model.Category { return model.CategoryVolume }
func (v *VolumeProfile) WarmupPeriod() int        { return v.window }
func (v *VolumeProfile) CurrentValue() float64 {
	poc, _ := v.pointOfControl()
	return poc
}

func (v *VolumeProfile) Update(t Tick) *model.IndicatorSignal {
	v.ticks++
	v.atr.Update(t)

	v.candles = append(v.candles, t.Candle)
	if len(v.candles) > v.window {
		v.candles = v.candles[len(v.candles)-v.window:]
	}

	if len(v.candles) < v.window {
		return nil
	}

	poc, bucketWeight := v.pointOfControl()
	if bucketWeight == 0 {
		return nil
	}

	close := t.Candle.Close
	atrValue := v.atr.CurrentValue()
	midline := v.midline()

	var out *model.IndicatorSignal
	switch {
	case close > poc && close-poc <= 0.25*atrValue && poc < midline:
		out = &model.IndicatorSignal{
			IndicatorName: v.Name(), Category: v.Category(), Kind: model.KindBullish,
			Strength: 1, Reason: "POC support",
		}
	case close < poc && poc-close <= 0.25*atrValue && poc > midline:
		out = &model.IndicatorSignal{
			IndicatorName: v.Name(), Category: v.Category(), Kind: model.KindBearish,
			Strength: -1, Reason: "POC resistance",
		}
	}

	if out == nil {
		if w := v.bucketWeightFor(close); w > 0 && w < 0.10*bucketWeight {
			out = &model.IndicatorSignal{
				IndicatorName: v.Name(), Category: v.Category(), Kind: model.KindInformational,
				Strength: 0, Reason: "Near low-volume node",
			}
		}
	}

	if v.ticks < v.WarmupPeriod() {
		return nil
	}
	return out
}

// bucketBounds returns the low/high close range spanned by the tracked
// window; bucketIndex maps a price into that range.
func (v *VolumeProfile) bucketBounds() (lo, hi float64) {
	lo, hi = v.candles[0].Close, v.candles[0].Close
	for _, c := range v.candles {
		if c.Close < lo {
			lo = c.Close
		}
		if c.Close > hi {
			hi = c.Close
		}
	}
	return lo, hi
}

func (v *VolumeProfile) bucketIndex(price, lo, hi float64) int {
	if hi <= lo {
		return 0
	}
	span := hi - lo
	idx := int((price - lo) / span * float64(volumeProfileBuckets))
	if idx >= volumeProfileBuckets {
		idx = volumeProfileBuckets - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func (v *VolumeProfile) weights() []float64 {
	lo, hi := v.bucketBounds()
	weights := make([]float64, volumeProfileBuckets)
	for _, c := range v.candles {
		idx := v.bucketIndex(c.Close, lo, hi)
		weights[idx] += c.Volume
	}
	return weights
}

func (v *VolumeProfile) pointOfControl() (price float64, weight float64) {
	if len(v.candles) < v.window {
		return 0, 0
	}
	lo, hi := v.bucketBounds()
	weights := v.weights()
	maxIdx := 0
	for i, w := range weights {
		if w > weights[maxIdx] {
			maxIdx = i
		}
	}
	span := hi - lo
	bucketWidth := span / float64(volumeProfileBuckets)
	price = lo + bucketWidth*(float64(maxIdx)+0.5)
	return price, weights[maxIdx]
}

func (v *VolumeProfile) bucketWeightFor(price float64) float64 {
	lo, hi := v.bucketBounds()
	idx := v.bucketIndex(price, lo, hi)
	return v.weights()[idx]
}

func (v *VolumeProfile) midline() float64 {
	lo, hi := v.bucketBounds()
	return (lo + hi) / 2
}
