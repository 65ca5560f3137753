package model

import "time"

// IndicatorSignal is one observation emitted by one indicator.
type IndicatorSignal struct {
	IndicatorName string     `json:"indicator_name"`
	Category      Category   `json:"category"`
	Kind          SignalKind `json:"kind"`
	Strength      int        `json:"strength"` // in [-3, +3], sign matches Kind
	Reason        string     `json:"reason"`
}

// NeutralSignal is what an indicator contributes to aggregation before its
// warmup completes or when it has never emitted.
func NeutralSignal(indicatorName string, category Category) IndicatorSignal {
	return IndicatorSignal{
		IndicatorName: indicatorName,
		Category:      category,
		Kind:          KindNeutral,
		Strength:      0,
		Reason:        "",
	}
}

// CategoryScore is the aggregation of one category's member signals.
type CategoryScore struct {
	Category            Category `json:"category"`
	Score               int      `json:"score"`
	ContributingReasons []string `json:"contributing_reasons"`
}

// SignalOutput is the pipeline's result for one symbol at one timestamp.
type SignalOutput struct {
	Symbol            string          `json:"symbol"`
	Timestamp         time.Time       `json:"timestamp"`
	Direction         Direction       `json:"direction"`
	MarketBias        MarketBias      `json:"market_bias"`
	Confidence        float64         `json:"confidence"`
	RiskLevel         RiskLevel       `json:"risk_level"`
	TotalScore        int             `json:"total_score"`
	NormalizedScore   float64         `json:"normalized_score"`
	PerCategoryScores []CategoryScore `json:"per_category_scores"`
	Reasons           []string        `json:"reasons"`
	RecommendedSLPct  float64         `json:"recommended_sl_pct"`
	RecommendedTPPct  float64         `json:"recommended_tp_pct"`
	ATRValue          float64         `json:"atr_value"`
}
