package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/perpsignal/signal-engine/pkg/model"
)

// PostgresSink is a gorm.io/gorm + gorm.io/driver/postgres repository over
// SignalRecord. Writes are upserts keyed by (symbol, timestamp) so a
// retried poll cycle never double-inserts the same evaluation.
type PostgresSink struct {
	db *gorm.DB
}

// NewPostgresSink wraps an already-connected *gorm.DB and ensures the
// signals table exists.
func NewPostgresSink(db *gorm.DB) (*PostgresSink, error) {
	if err := db.AutoMigrate(&SignalRecord{}); err != nil {
		return nil, fmt.Errorf("migrate signals table: %w", err)
	}
	return &PostgresSink{db: db}, nil
}

func (s *PostgresSink) Store(ctx context.Context, out *model.SignalOutput) error {
	record, err := NewSignalRecord(out)
	if err != nil {
		return fmt.Errorf("encode signal record: %w", err)
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "timestamp"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"direction", "market_bias", "confidence", "risk_level",
				"total_score", "normalized_score", "per_category_scores",
				"reasons", "recommended_sl_pct", "recommended_tp_pct",
				"atr_value", "updated_at",
			}),
		}).
		Create(record).Error
}

func (s *PostgresSink) Latest(ctx context.Context, symbol string) (*model.SignalOutput, error) {
	var record SignalRecord
	err := s.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("timestamp DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return record.ToSignalOutput()
}
