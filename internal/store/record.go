// Package store implements SignalSink and its concrete shapes: a GORM-backed
// Postgres sink, a Redis read-through cache decorator, and an in-memory sink
// for tests.
package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/perpsignal/signal-engine/pkg/model"
)

// SignalRecord is the GORM persistence model mirroring model.SignalOutput
// one-to-one, with PerCategoryScores and Reasons stored as JSON columns and
// a surrogate UUID primary key.
type SignalRecord struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Symbol            string    `gorm:"index:idx_signal_symbol_ts,unique,priority:1;not null"`
	Timestamp         time.Time `gorm:"index:idx_signal_symbol_ts,unique,priority:2;not null"`
	Direction         string    `gorm:"not null"`
	MarketBias        string    `gorm:"not null"`
	Confidence        float64   `gorm:"not null"`
	RiskLevel         string    `gorm:"not null"`
	TotalScore        int       `gorm:"not null"`
	NormalizedScore   float64   `gorm:"not null"`
	PerCategoryScores string    `gorm:"type:jsonb;not null"`
	Reasons           string    `gorm:"type:jsonb;not null"`
	RecommendedSLPct  float64   `gorm:"not null"`
	RecommendedTPPct  float64   `gorm:"not null"`
	ATRValue          float64   `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName pins the table name explicitly rather than relying on GORM's
// pluralization.
func (SignalRecord) TableName() string { return "signals" }

// NewSignalRecord converts a pipeline SignalOutput into its persisted shape.
func NewSignalRecord(out *model.SignalOutput) (*SignalRecord, error) {
	categoryScores, err := json.Marshal(out.PerCategoryScores)
	if err != nil {
		return nil, err
	}
	reasons, err := json.Marshal(out.Reasons)
	if err != nil {
		return nil, err
	}
	return &SignalRecord{
		ID:                uuid.New(),
		Symbol:            out.Symbol,
		Timestamp:         out.Timestamp,
		Direction:         string(out.Direction),
		MarketBias:        string(out.MarketBias),
		Confidence:        out.Confidence,
		RiskLevel:         string(out.RiskLevel),
		TotalScore:        out.TotalScore,
		NormalizedScore:   out.NormalizedScore,
		PerCategoryScores: string(categoryScores),
		Reasons:           string(reasons),
		RecommendedSLPct:  out.RecommendedSLPct,
		RecommendedTPPct:  out.RecommendedTPPct,
		ATRValue:          out.ATRValue,
	}, nil
}

// ToSignalOutput converts a persisted record back into the pipeline shape,
// used by the HTTP query surface.
func (r *SignalRecord) ToSignalOutput() (*model.SignalOutput, error) {
	var categoryScores []model.CategoryScore
	if err := json.Unmarshal([]byte(r.PerCategoryScores), &categoryScores); err != nil {
		return nil, err
	}
	var reasons []string
	if err := json.Unmarshal([]byte(r.Reasons), &reasons); err != nil {
		return nil, err
	}
	return &model.SignalOutput{
		Symbol:            r.Symbol,
		Timestamp:         r.Timestamp,
		Direction:         model.Direction(r.Direction),
		MarketBias:        model.MarketBias(r.MarketBias),
		Confidence:        r.Confidence,
		RiskLevel:         model.RiskLevel(r.RiskLevel),
		TotalScore:        r.TotalScore,
		NormalizedScore:   r.NormalizedScore,
		PerCategoryScores: categoryScores,
		Reasons:           reasons,
		RecommendedSLPct:  r.RecommendedSLPct,
		RecommendedTPPct:  r.RecommendedTPPct,
		ATRValue:          r.ATRValue,
	}, nil
}
