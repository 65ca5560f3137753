package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perpsignal/signal-engine/pkg/model"
)

func tickWithFunding(i int, rate float64) Tick {
	return Tick{Candle: candleAt(i, 100), FundingRate: rate, HasFunding: true}
}

func TestFundingRate_NoSignalWithoutFundingData(t *testing.T) {
	f := NewFundingRate()
	sig := f.Update(Tick{Candle: candleAt(0, 100)})
	assert.Nil(t, sig)
}

func TestFundingRate_ExtremePositiveMeanSignalsLongCrowdingFade(t *testing.T) {
	f := NewFundingRate()
	var last *model.IndicatorSignal
	for i := 0; i < fundingWindow; i++ {
		last = f.Update(tickWithFunding(i, 0.001))
	}
	assert.InDelta(t, 0.001, f.Mean(), 1e-9)
	if assert.NotNil(t, last) {
		assert.Equal(t, model.KindBearish, last.Kind)
		assert.Equal(t, -2, last.Strength)
		assert.Equal(t, "Extreme bias (long crowding)", last.Reason)
	}
}

func TestFundingRate_ExtremeNegativeMeanSignalsShortCrowdingFade(t *testing.T) {
	f := NewFundingRate()
	var last *model.IndicatorSignal
	for i := 0; i < fundingWindow; i++ {
		last = f.Update(tickWithFunding(i, -0.001))
	}
	if assert.NotNil(t, last) {
		assert.Equal(t, model.KindBullish, last.Kind)
		assert.Equal(t, 2, last.Strength)
	}
}

func TestFundingRate_MildPositiveMeanBelowExtremeThreshold(t *testing.T) {
	f := NewFundingRate()
	var last *model.IndicatorSignal
	for i := 0; i < fundingWindow; i++ {
		last = f.Update(tickWithFunding(i, 0.0002))
	}
	if assert.NotNil(t, last) {
		assert.Equal(t, -1, last.Strength)
		assert.Equal(t, "Long crowding", last.Reason)
	}
}

func TestFundingRate_NearZeroMeanEmitsNoSignal(t *testing.T) {
	f := NewFundingRate()
	var last *model.IndicatorSignal
	for i := 0; i < fundingWindow; i++ {
		last = f.Update(tickWithFunding(i, 0.00001))
	}
	assert.Nil(t, last)
}
