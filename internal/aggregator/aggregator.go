// Package aggregator reduces the latest per-indicator signals into category
// scores, a total score, market bias, confidence, risk level, and the
// ordered reasons list.
package aggregator

import "github.com/perpsignal/signal-engine/pkg/model"

const (
	fundingExtremeThreshold = 0.0005
	weakScoreThreshold      = 2
)

// Input is everything the aggregator needs beyond the raw category sums:
// the signals that drive risk escalation but aren't expressed purely as
// strength contributions.
type Input struct {
	// Signals holds exactly one entry per indicator in the family, in
	// registry order: the indicator's most recent signal, or NeutralSignal
	// for an indicator that has not emitted anything in the window.
	Signals []model.IndicatorSignal

	ATRRegime            model.ATRRegime
	FundingMean          float64
	RSIDivergencePresent bool
}

// Result is the aggregator's full output, prior to direction/SL-TP
// decisioning (the decision package consumes this).
type Result struct {
	PerCategoryScores []model.CategoryScore
	TotalScore        int
	NormalizedScore   float64
	MarketBias        model.MarketBias
	Confidence        float64
	RiskLevel         model.RiskLevel
	Reasons           []string
}

// Aggregate reduces per-indicator signals into category scores, a total
// score, market bias, confidence, and an escalated risk level.
func Aggregate(in Input) Result {
	categories := model.Categories()
	scores := make([]model.CategoryScore, 0, len(categories))
	scoreByCategory := make(map[model.Category]int, len(categories))

	for _, cat := range categories {
		sum := 0
		reasons := make([]string, 0, 4)
		for _, sig := range in.Signals {
			if sig.Category != cat {
				continue
			}
			sum += sig.Strength
			if sig.Reason != "" {
				reasons = append(reasons, sig.Reason)
			}
		}
		bound := model.CategoryBound(cat)
		sum = clamp(sum, -bound, bound)
		scoreByCategory[cat] = sum
		scores = append(scores, model.CategoryScore{
			Category:            cat,
			Score:               sum,
			ContributingReasons: reasons,
		})
	}

	total := 0
	for _, s := range scores {
		total += s.Score
	}

	normalized := clampFloat(float64(total+13)/26, 0, 1)

	bias := marketBias(total)

	confidence := confidenceFor(total, scoreByCategory[model.CategoryTrend], scoreByCategory[model.CategoryMomentum])

	risk := riskLevelFor(in.ATRRegime, in.FundingMean, total, in.RSIDivergencePresent)

	reasons := make([]string, 0, len(in.Signals))
	for _, s := range scores {
		reasons = append(reasons, s.ContributingReasons...)
	}

	return Result{
		PerCategoryScores: scores,
		TotalScore:        total,
		NormalizedScore:   normalized,
		MarketBias:        bias,
		Confidence:        confidence,
		RiskLevel:         risk,
		Reasons:           reasons,
	}
}

func marketBias(total int) model.MarketBias {
	switch {
	case total >= 7:
		return model.BiasStrongBullish
	case total >= 3:
		return model.BiasBullish
	case total <= -7:
		return model.BiasStrongBearish
	case total <= -3:
		return model.BiasBearish
	default:
		return model.BiasNeutral
	}
}

func confidenceFor(total, trendScore, momentumScore int) float64 {
	base := absInt(total) / 13.0
	switch {
	case trendScore == 0 || momentumScore == 0:
		// no adjustment
	case sameSign(trendScore, momentumScore):
		base += 0.20
	default:
		base -= 0.20
	}
	return clampFloat(base, 0, 1)
}

func riskLevelFor(regime model.ATRRegime, fundingMean float64, total int, rsiDivergence bool) model.RiskLevel {
	steps := 0
	switch regime {
	case model.ATRRegimeElevated:
		steps++
	case model.ATRRegimeHigh:
		steps += 2
	}
	if absFloat(fundingMean) > fundingExtremeThreshold {
		steps++
	}
	if absInt(total) <= weakScoreThreshold {
		steps++
	}
	if rsiDivergence {
		steps--
	}
	return model.StepRisk(model.RiskLow, steps)
}

func sameSign(a, b int) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
