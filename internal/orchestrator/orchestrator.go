// Package orchestrator implements the evaluation pipeline's single entry
// point: Evaluate. It is the only package that wires together numeric
// primitives (transitively, via indicator), the indicator family, the
// aggregator, and the decisioner.
package orchestrator

import (
	"github.com/perpsignal/signal-engine/internal/aggregator"
	"github.com/perpsignal/signal-engine/internal/config"
	"github.com/perpsignal/signal-engine/internal/decision"
	"github.com/perpsignal/signal-engine/internal/indicator"
	"github.com/perpsignal/signal-engine/pkg/model"
)

// minCandles is the window length below which evaluation does not proceed at
// all (EMA Crossover's 50-bar requirement, rounded up). Volume Profile's
// warmup equals its window (100 by default), so on shorter windows it emits
// nothing.
const minCandles = 60

// Evaluate is the core pipeline entry point. It returns (nil, nil) for
// "insufficient data" — a normal result, not an error — and (nil, err) for
// ordering or candle-invariant violations. fundingHistory and
// openInterestHistory are aligned to the tail of candles; either may be
// shorter than candles or nil, in which case the earliest candles simply
// carry no Perp-category observation. Zero-valued fields of cfg fall back to
// config.Default().
func Evaluate(candles []model.Candle, symbol string, fundingHistory, openInterestHistory []float64, cfg config.DecisionConfig) (*model.SignalOutput, error) {
	if len(candles) < minCandles {
		return nil, nil
	}

	if err := validateOrdering(candles); err != nil {
		return nil, err
	}

	defaults := config.Default()
	volumeProfileWindow := cfg.VolumeProfileWindow
	if volumeProfileWindow == 0 {
		volumeProfileWindow = defaults.VolumeProfileWindow
	}
	divergenceWindow := cfg.DivergenceWindow
	if divergenceWindow == 0 {
		divergenceWindow = defaults.DivergenceWindow
	}

	indicators := indicator.New(volumeProfileWindow, divergenceWindow)
	signals := make([]model.IndicatorSignal, len(indicators))
	for i, ind := range indicators {
		signals[i] = model.NeutralSignal(ind.Name(), ind.Category())
	}

	var rsiInd *indicator.RSI
	var atrInd *indicator.ATR
	var fundingInd *indicator.FundingRate
	for _, ind := range indicators {
		switch v := ind.(type) {
		case *indicator.RSI:
			rsiInd = v
		case *indicator.ATR:
			atrInd = v
		case *indicator.FundingRate:
			fundingInd = v
		}
	}

	total := len(candles)
	for i, c := range candles {
		fr, hasFr := alignSeries(i, total, fundingHistory)
		oi, hasOi := alignSeries(i, total, openInterestHistory)
		tick := indicator.Tick{
			Candle:          c,
			FundingRate:     fr,
			HasFunding:      hasFr,
			OpenInterest:    oi,
			HasOpenInterest: hasOi,
		}
		for idx, ind := range indicators {
			if sig := ind.Update(tick); sig != nil {
				signals[idx] = *sig
			}
		}
	}

	fundingMean := fundingInd.Mean()

	agg := aggregator.Aggregate(aggregator.Input{
		Signals:              signals,
		ATRRegime:            atrInd.Regime(),
		FundingMean:          fundingMean,
		RSIDivergencePresent: rsiInd.DivergencePresent,
	})

	lastClose := candles[len(candles)-1].Close
	atrValue := atrInd.CurrentValue()

	dec := decision.Decide(decision.Input{
		TotalScore:     agg.TotalScore,
		ATRValue:       atrValue,
		Close:          lastClose,
		FundingMean:    fundingMean,
		LongThreshold:  cfg.LongThresholdInt,
		ShortThreshold: cfg.ShortThresholdInt,
		SLMultiplier:   cfg.SLATRMultiplier,
		TPMultiplier:   cfg.TPATRMultiplier,
	})

	return &model.SignalOutput{
		Symbol:            symbol,
		Timestamp:         candles[len(candles)-1].Timestamp,
		Direction:         dec.Direction,
		MarketBias:        agg.MarketBias,
		Confidence:        agg.Confidence,
		RiskLevel:         agg.RiskLevel,
		TotalScore:        agg.TotalScore,
		NormalizedScore:   agg.NormalizedScore,
		PerCategoryScores: agg.PerCategoryScores,
		Reasons:           agg.Reasons,
		RecommendedSLPct:  dec.SLPct,
		RecommendedTPPct:  dec.TPPct,
		ATRValue:          atrValue,
	}, nil
}

func validateOrdering(candles []model.Candle) error {
	for i, c := range candles {
		if err := c.Validate(); err != nil {
			return err
		}
		if i > 0 && !c.Timestamp.After(candles[i-1].Timestamp) {
			return model.NewOrderingViolationError(
				"candle %d timestamp %s is not strictly after previous candle's %s",
				i, c.Timestamp, candles[i-1].Timestamp,
			)
		}
	}
	return nil
}

// alignSeries maps candle index i (of total candles) to a position in an
// exogenous series that is aligned to the tail of the candle history: when
// series is shorter than the candle window, the earliest candles have no
// observation.
func alignSeries(i, total int, series []float64) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	offset := total - len(series)
	if i < offset {
		return 0, false
	}
	return series[i-offset], true
}
