// Package decision applies direction thresholds to an aggregated total score
// and computes ATR-derived stop-loss/take-profit percentages, including a
// funding-crowding override.
package decision

import "github.com/perpsignal/signal-engine/pkg/model"

const (
	defaultLongThreshold  = 3
	defaultShortThreshold = -3

	defaultSLMultiplier = 1.2
	defaultTPMultiplier = 2.0

	fundingExtremeThreshold = 0.0005
	crowdOverrideFactor     = 1.25
)

// Input is what the decision layer needs from the aggregator plus the raw
// ATR/close values the orchestrator collected.
type Input struct {
	TotalScore  int
	ATRValue    float64
	Close       float64
	FundingMean float64

	LongThreshold  int // defaults to 3 when zero
	ShortThreshold int // defaults to -3 when zero
	SLMultiplier   float64
	TPMultiplier   float64
}

// Output is the direction plus SL/TP percentages, ready to stamp onto a
// SignalOutput.
type Output struct {
	Direction model.Direction
	SLPct     float64
	TPPct     float64
}

// Decide applies the long/short thresholds to the total score and, for a
// non-neutral direction, derives SL/TP percentages from ATR/close.
func Decide(in Input) Output {
	longThreshold := in.LongThreshold
	if longThreshold == 0 {
		longThreshold = defaultLongThreshold
	}
	shortThreshold := in.ShortThreshold
	if shortThreshold == 0 {
		shortThreshold = defaultShortThreshold
	}
	slMultiplier := in.SLMultiplier
	if slMultiplier == 0 {
		slMultiplier = defaultSLMultiplier
	}
	tpMultiplier := in.TPMultiplier
	if tpMultiplier == 0 {
		tpMultiplier = defaultTPMultiplier
	}

	var direction model.Direction
	switch {
	case in.TotalScore >= longThreshold:
		direction = model.DirectionLong
	case in.TotalScore <= shortThreshold:
		direction = model.DirectionShort
	default:
		direction = model.DirectionNeutral
	}

	if direction == model.DirectionNeutral || in.Close == 0 {
		return Output{Direction: direction}
	}

	atrOverClose := in.ATRValue / in.Close
	slPct := atrOverClose * slMultiplier
	tpPct := atrOverClose * tpMultiplier

	if sidesWithCrowd(direction, in.FundingMean) {
		slPct *= crowdOverrideFactor
		tpPct *= crowdOverrideFactor
	}

	return Output{Direction: direction, SLPct: slPct, TPPct: tpPct}
}

// sidesWithCrowd reports whether a non-neutral position sides with the
// crowd: long crowding (positive funding) paired with a Long position, or
// short crowding (negative funding) paired with a Short position. Fading the
// crowd leaves SL/TP unchanged.
func sidesWithCrowd(direction model.Direction, fundingMean float64) bool {
	if absFloat(fundingMean) <= fundingExtremeThreshold {
		return false
	}
	if fundingMean > 0 {
		return direction == model.DirectionLong
	}
	return direction == model.DirectionShort
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
