package appmock

import (
	"context"
	"errors"

	domain "credit-risk-engine/internal/domain/application"
)

var errNotImplemented = errors.New("appmock: not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Only set the methods a test needs; the rest return errNotImplemented.
type Repo struct {
	CreateFn               func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn   func(ctx context.Context, applicationID string) (*domain.Application, error)
	UpdateStatusFn         func(ctx context.Context, applicationID string, status domain.Status) (*domain.Application, error)
	ListAllFn              func(ctx context.Context) ([]domain.Application, error)
	CountFn                func(ctx context.Context) (int64, error)
	SumLoanAmountByStatusFn func(ctx context.Context, status domain.Status) (float64, error)
	AverageCreditScoreFn   func(ctx context.Context) (float64, error)
	CountByTierFn          func(ctx context.Context) ([]domain.TierCount, error)
	CountByStatusFn        func(ctx context.Context) ([]domain.StatusCount, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, errNotImplemented
}

func (m *Repo) UpdateStatus(ctx context.Context, applicationID string, status domain.Status) (*domain.Application, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, applicationID, status)
	}
	return nil, errNotImplemented
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Application, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, errNotImplemented
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, errNotImplemented
}

func (m *Repo) SumLoanAmountByStatus(ctx context.Context, status domain.Status) (float64, error) {
	if m.SumLoanAmountByStatusFn != nil {
		return m.SumLoanAmountByStatusFn(ctx, status)
	}
	return 0, errNotImplemented
}

func (m *Repo) AverageCreditScore(ctx context.Context) (float64, error) {
	if m.AverageCreditScoreFn != nil {
		return m.AverageCreditScoreFn(ctx)
	}
	return 0, errNotImplemented
}

func (m *Repo) CountByTier(ctx context.Context) ([]domain.TierCount, error) {
	if m.CountByTierFn != nil {
		return m.CountByTierFn(ctx)
	}
	return nil, errNotImplemented
}

func (m *Repo) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return nil, errNotImplemented
}
