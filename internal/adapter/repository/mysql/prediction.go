package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	predDomain "credit-risk-engine/internal/domain/prediction"
)

type PredictionRepository struct{ db *gorm.DB }

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Create(ctx context.Context, p *predDomain.PredictionLog) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PredictionRepository) GetByPredictionID(ctx context.Context, predictionID string) (*predDomain.PredictionLog, error) {
	var out predDomain.PredictionLog
	res := r.db.WithContext(ctx).Where("prediction_id = ?", predictionID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, predDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *PredictionRepository) ListRecent(ctx context.Context, limit int) ([]predDomain.PredictionLog, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []predDomain.PredictionLog
	res := q.Find(&out)
	return out, res.Error
}

func (r *PredictionRepository) Delete(ctx context.Context, predictionID string) error {
	res := r.db.WithContext(ctx).
		Where("prediction_id = ?", predictionID).
		Delete(&predDomain.PredictionLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return predDomain.ErrNotFound
	}
	return nil
}

func (r *PredictionRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&predDomain.PredictionLog{}).Error
}
