package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perpsignal/signal-engine/pkg/model"
)

func tickWithOI(i int, close float64, oi float64) Tick {
	t := Tick{Candle: candleAt(i, close), OpenInterest: oi, HasOpenInterest: true}
	return t
}

func TestOpenInterest_NoSignalWithoutOIData(t *testing.T) {
	o := NewOpenInterest()
	sig := o.Update(Tick{Candle: candleAt(0, 100)})
	assert.Nil(t, sig)
}

func TestOpenInterest_ExpansionOnRisingOIAndRisingPrice(t *testing.T) {
	o := NewOpenInterest()
	// the embedded 14-period ATR seeds inside the 24-tick OI window; the
	// expansion branch does not read it.
	price := 100.0
	oi := 1000.0
	var last *model.IndicatorSignal
	for i := 0; i < oiWindow; i++ {
		price *= 1.01
		oi *= 1.01 // +1%/tick compounding well past the 5% window threshold
		last = o.Update(tickWithOI(i, price, oi))
	}
	if assert.NotNil(t, last) {
		assert.Equal(t, model.KindBullish, last.Kind)
		assert.Equal(t, 2, last.Strength)
		assert.Equal(t, "Expansion", last.Reason)
	}
}

func TestOpenInterest_SqueezeOnFallingOIWithFlatPrice(t *testing.T) {
	o := NewOpenInterest()
	oi := 1000.0
	var last *model.IndicatorSignal
	for i := 0; i < oiWindow; i++ {
		oi *= 0.99
		last = o.Update(tickWithOI(i, 100, oi))
	}
	if last != nil {
		assert.Equal(t, "Squeeze", last.Reason)
	}
}
