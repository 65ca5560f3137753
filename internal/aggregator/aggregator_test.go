package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perpsignal/signal-engine/pkg/model"
)

func sig(name string, cat model.Category, kind model.SignalKind, strength int, reason string) model.IndicatorSignal {
	return model.IndicatorSignal{
		IndicatorName: name, Category: cat, Kind: kind, Strength: strength, Reason: reason,
	}
}

func neutral(name string, cat model.Category) model.IndicatorSignal {
	return model.NeutralSignal(name, cat)
}

func TestAggregate_CategoryScoresClampToDeclaredBounds(t *testing.T) {
	in := Input{
		Signals: []model.IndicatorSignal{
			sig("RSI", model.CategoryMomentum, model.KindBullish, 2, "Oversold"),
			sig("MACD", model.CategoryMomentum, model.KindBullish, 2, "Bullish crossover"),
			sig("OBV", model.CategoryMomentum, model.KindBullish, 2, "x"), // not really momentum but fine for the clamp test
		},
	}
	result := Aggregate(in)
	for _, cs := range result.PerCategoryScores {
		if cs.Category == model.CategoryMomentum {
			assert.Equal(t, model.CategoryBound(model.CategoryMomentum), cs.Score)
		}
	}
}

func TestAggregate_TotalScoreSumsCategories(t *testing.T) {
	in := Input{
		Signals: []model.IndicatorSignal{
			sig("RSI", model.CategoryMomentum, model.KindBullish, 1, "Oversold"),
			sig("EMACrossover", model.CategoryTrend, model.KindBullish, 2, "Golden cross"),
			neutral("ATR", model.CategoryVolatility),
			neutral("OBV", model.CategoryVolume),
			neutral("FundingRate", model.CategoryPerp),
		},
	}
	result := Aggregate(in)
	assert.Equal(t, 3, result.TotalScore)
}

func TestAggregate_MarketBiasThresholds(t *testing.T) {
	cases := []struct {
		total int
		bias  model.MarketBias
	}{
		{8, model.BiasStrongBullish},
		{7, model.BiasStrongBullish},
		{6, model.BiasBullish},
		{3, model.BiasBullish},
		{2, model.BiasNeutral},
		{-2, model.BiasNeutral},
		{-3, model.BiasBearish},
		{-6, model.BiasBearish},
		{-7, model.BiasStrongBearish},
		{-13, model.BiasStrongBearish},
	}
	for _, c := range cases {
		assert.Equal(t, c.bias, marketBias(c.total), "total=%d", c.total)
	}
}

func TestAggregate_ConfidenceAgreementBoost(t *testing.T) {
	agree := confidenceFor(9, 2, 1)   // trend and momentum both positive
	disagree := confidenceFor(9, 2, -1) // trend positive, momentum negative
	assert.Greater(t, agree, disagree)
}

func TestAggregate_ConfidenceClampedToUnitInterval(t *testing.T) {
	c := confidenceFor(13, 3, 3)
	assert.LessOrEqual(t, c, 1.0)
	c = confidenceFor(2, 1, -1)
	assert.GreaterOrEqual(t, c, 0.0)
}

func TestAggregate_RiskEscalatesWithATRRegime(t *testing.T) {
	base := riskLevelFor(model.ATRRegimeNormal, 0.0, 6, false)
	elevated := riskLevelFor(model.ATRRegimeElevated, 0.0, 6, false)
	high := riskLevelFor(model.ATRRegimeHigh, 0.0, 6, false)
	assert.Equal(t, model.RiskLow, base)
	assert.Equal(t, model.RiskMedium, elevated)
	assert.Equal(t, model.RiskHigh, high)
}

func TestAggregate_RiskEscalatesOnExtremeFundingAndWeakScore(t *testing.T) {
	risk := riskLevelFor(model.ATRRegimeNormal, 0.001, 1, false)
	// extreme funding (+1) and weak |total|<=2 (+1) => two steps up from Low
	assert.Equal(t, model.RiskHigh, risk)
}

func TestAggregate_RiskDeescalatesOnDivergence(t *testing.T) {
	withoutDivergence := riskLevelFor(model.ATRRegimeHigh, 0.0, 6, false)
	withDivergence := riskLevelFor(model.ATRRegimeHigh, 0.0, 6, true)
	assert.NotEqual(t, withoutDivergence, withDivergence)
}

func TestAggregate_ReasonsFollowCategoryOrder(t *testing.T) {
	in := Input{
		Signals: []model.IndicatorSignal{
			sig("FundingRate", model.CategoryPerp, model.KindBearish, -1, "Long crowding"),
			sig("RSI", model.CategoryMomentum, model.KindBullish, 1, "Oversold"),
			sig("ATR", model.CategoryVolatility, model.KindInformational, 0, ""), // no reason, excluded
			sig("EMACrossover", model.CategoryTrend, model.KindBullish, 2, "Golden cross"),
		},
	}
	result := Aggregate(in)
	assert.Equal(t, []string{"Oversold", "Golden cross", "Long crowding"}, result.Reasons)
}
