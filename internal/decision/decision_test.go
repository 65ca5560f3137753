package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perpsignal/signal-engine/pkg/model"
)

func TestDecide_DirectionThresholdBoundaries(t *testing.T) {
	cases := []struct {
		total int
		want  model.Direction
	}{
		{3, model.DirectionLong},
		{2, model.DirectionNeutral},
		{-2, model.DirectionNeutral},
		{-3, model.DirectionShort},
	}
	for _, c := range cases {
		out := Decide(Input{TotalScore: c.total, ATRValue: 1, Close: 100})
		assert.Equal(t, c.want, out.Direction, "total=%d", c.total)
	}
}

func TestDecide_NeutralHasZeroSLTP(t *testing.T) {
	out := Decide(Input{TotalScore: 0, ATRValue: 5, Close: 100})
	assert.Equal(t, model.DirectionNeutral, out.Direction)
	assert.Zero(t, out.SLPct)
	assert.Zero(t, out.TPPct)
}

func TestDecide_SLTPFormulaWithDefaults(t *testing.T) {
	out := Decide(Input{TotalScore: 5, ATRValue: 2, Close: 100})
	assert.Equal(t, model.DirectionLong, out.Direction)
	assert.InDelta(t, 0.024, out.SLPct, 1e-9) // (2/100)*1.2
	assert.InDelta(t, 0.04, out.TPPct, 1e-9)  // (2/100)*2.0
}

func TestDecide_CustomMultipliersAndThresholds(t *testing.T) {
	out := Decide(Input{
		TotalScore: 10, ATRValue: 1, Close: 50,
		LongThreshold: 8, SLMultiplier: 1.5, TPMultiplier: 3.0,
	})
	assert.Equal(t, model.DirectionLong, out.Direction)
	assert.InDelta(t, 0.03, out.SLPct, 1e-9)
	assert.InDelta(t, 0.06, out.TPPct, 1e-9)
}

func TestDecide_FundingCrowdingOverrideAppliesWhenSidingWithCrowd(t *testing.T) {
	baseline := Decide(Input{TotalScore: 5, ATRValue: 2, Close: 100, FundingMean: 0})
	crowded := Decide(Input{TotalScore: 5, ATRValue: 2, Close: 100, FundingMean: 0.001})
	assert.InDelta(t, baseline.SLPct*1.25, crowded.SLPct, 1e-9)
	assert.InDelta(t, baseline.TPPct*1.25, crowded.TPPct, 1e-9)
}

func TestDecide_FundingCrowdingOverrideDoesNotApplyWhenFadingTheCrowd(t *testing.T) {
	baseline := Decide(Input{TotalScore: -5, ATRValue: 2, Close: 100, FundingMean: 0})
	fading := Decide(Input{TotalScore: -5, ATRValue: 2, Close: 100, FundingMean: 0.001})
	assert.Equal(t, model.DirectionShort, fading.Direction)
	assert.InDelta(t, baseline.SLPct, fading.SLPct, 1e-9)
	assert.InDelta(t, baseline.TPPct, fading.TPPct, 1e-9)
}

func TestDecide_FundingBelowExtremeThresholdNeverTriggersOverride(t *testing.T) {
	baseline := Decide(Input{TotalScore: 5, ATRValue: 2, Close: 100, FundingMean: 0})
	mild := Decide(Input{TotalScore: 5, ATRValue: 2, Close: 100, FundingMean: 0.0004})
	assert.InDelta(t, baseline.SLPct, mild.SLPct, 1e-9)
}

func TestDecide_ZeroCloseAvoidsDivideByZero(t *testing.T) {
	out := Decide(Input{TotalScore: 5, ATRValue: 2, Close: 0})
	assert.Equal(t, model.DirectionLong, out.Direction)
	assert.Zero(t, out.SLPct)
	assert.Zero(t, out.TPPct)
}
