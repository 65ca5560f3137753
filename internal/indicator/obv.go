package indicator

import "github.com/perpsignal/signal-engine/pkg/model"

// OBV implements cumulative signed-volume On-Balance Volume with
// price/OBV divergence and new-extreme confirmation signals.
type OBV struct {
	divergenceWindow int

	prevClose float64
	havePrev  bool

	value float64

	closeHistory []float64
	obvHistory   []float64

	ticks int
}

// NewOBV builds an OBV tracker whose divergence/confirmation scan looks back
// divergenceWindow bars.
func NewOBV(divergenceWindow int) *OBV {
	return &OBV{divergenceWindow: divergenceWindow}
}

func (o *OBV) Name() string             { return "OBV" }
func (o *OBV) Category() model.Category { return model.CategoryVolume }
func (o *OBV) WarmupPeriod() int        { return o.divergenceWindow + 1 }
func (o *OBV) CurrentValue() float64    { return o.value }

func (o *OBV) Update(t Tick) *model.IndicatorSignal {
	o.ticks++
	c := t.Candle

	if o.havePrev {
		switch {
		case c.Close > o.prevClose:
			o.value += c.Volume
		case c.Close < o.prevClose:
			o.value -= c.Volume
		}
	}
	o.prevClose = c.Close
	o.havePrev = true

	o.closeHistory = append(o.closeHistory, c.Close)
	o.obvHistory = append(o.obvHistory, o.value)
	if len(o.closeHistory) > o.divergenceWindow+1 {
		o.closeHistory = o.closeHistory[len(o.closeHistory)-(o.divergenceWindow+1):]
		o.obvHistory = o.obvHistory[len(o.obvHistory)-(o.divergenceWindow+1):]
	}

	if o.ticks < o.WarmupPeriod() {
		return nil
	}

	n := len(o.closeHistory)
	priorCloses := o.closeHistory[:n-1]
	priorOBV := o.obvHistory[:n-1]

	minCloseIdx, maxCloseIdx := 0, 0
	minOBVIdx, maxOBVIdx := 0, 0
	for i := range priorCloses {
		if priorCloses[i] < priorCloses[minCloseIdx] {
			minCloseIdx = i
		}
		if priorCloses[i] > priorCloses[maxCloseIdx] {
			maxCloseIdx = i
		}
		if priorOBV[i] < priorOBV[minOBVIdx] {
			minOBVIdx = i
		}
		if priorOBV[i] > priorOBV[maxOBVIdx] {
			maxOBVIdx = i
		}
	}

	lastClose := o.closeHistory[n-1]
	lastOBV := o.obvHistory[n-1]

	// Divergence: price makes a new extreme that OBV does not confirm.
	if lastClose > priorCloses[maxCloseIdx] && lastOBV <= priorOBV[maxOBVIdx] {
		return &model.IndicatorSignal{
			IndicatorName: o.Name(), Category: o.Category(), Kind: model.KindBearish,
			Strength: -2, Reason: "Bearish OBV divergence",
		}
	}
	if lastClose < priorCloses[minCloseIdx] && lastOBV >= priorOBV[minOBVIdx] {
		return &model.IndicatorSignal{
			IndicatorName: o.Name(), Category: o.Category(), Kind: model.KindBullish,
			Strength: 2, Reason: "Bullish OBV divergence",
		}
	}

	// Confirmation: OBV makes a same-direction new extreme alongside price.
	if lastClose > priorCloses[maxCloseIdx] && lastOBV > priorOBV[maxOBVIdx] {
		return &model.IndicatorSignal{
			IndicatorName: o.Name(), Category: o.Category(), Kind: model.KindBullish,
			Strength: 1, Reason: "Confirmation",
		}
	}
	if lastClose < priorCloses[minCloseIdx] && lastOBV < priorOBV[minOBVIdx] {
		return &model.IndicatorSignal{
			IndicatorName: o.Name(), Category: o.Category(), Kind: model.KindBearish,
			Strength: -1, Reason: "Confirmation",
		}
	}

	return nil
}
