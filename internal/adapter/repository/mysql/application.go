package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	appDomain "credit-risk-engine/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

// UpdateStatus is a single conditional write; no read-modify-write race with
// concurrent updates on the same row.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, applicationID string, status appDomain.Status) (*appDomain.Application, error) {
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("application_id = ?", applicationID).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, appDomain.ErrNotFound
	}
	return r.GetByApplicationID(ctx, applicationID)
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&appDomain.Application{}).Count(&n)
	return n, res.Error
}

func (r *ApplicationRepository) SumLoanAmountByStatus(ctx context.Context, status appDomain.Status) (float64, error) {
	var total float64
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(loan_amount), 0)").
		Scan(&total)
	return total, res.Error
}

func (r *ApplicationRepository) AverageCreditScore(ctx context.Context) (float64, error) {
	var avg float64
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Select("COALESCE(AVG(credit_score), 0)").
		Scan(&avg)
	return avg, res.Error
}

func (r *ApplicationRepository) CountByTier(ctx context.Context) ([]appDomain.TierCount, error) {
	var rows []struct {
		RiskLevel string
		N         int64
	}
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Select("risk_level, COUNT(*) AS n").
		Group("risk_level").
		Order("risk_level").
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make([]appDomain.TierCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, appDomain.TierCount{Tier: appDomain.RiskTier(row.RiskLevel), Count: row.N})
	}
	return out, nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context) ([]appDomain.StatusCount, error) {
	var rows []struct {
		Status string
		N      int64
	}
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Order("status").
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make([]appDomain.StatusCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, appDomain.StatusCount{Status: appDomain.Status(row.Status), Count: row.N})
	}
	return out, nil
}
