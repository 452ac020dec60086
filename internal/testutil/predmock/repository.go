package predmock

import (
	"context"
	"errors"

	domain "credit-risk-engine/internal/domain/prediction"
)

var errNotImplemented = errors.New("predmock: not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, p *domain.PredictionLog) error
	GetByPredictionIDFn func(ctx context.Context, predictionID string) (*domain.PredictionLog, error)
	ListRecentFn        func(ctx context.Context, limit int) ([]domain.PredictionLog, error)
	DeleteFn            func(ctx context.Context, predictionID string) error
	DeleteAllFn         func(ctx context.Context) error
}

func (m *Repo) Create(ctx context.Context, p *domain.PredictionLog) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPredictionID(ctx context.Context, predictionID string) (*domain.PredictionLog, error) {
	if m.GetByPredictionIDFn != nil {
		return m.GetByPredictionIDFn(ctx, predictionID)
	}
	return nil, errNotImplemented
}

func (m *Repo) ListRecent(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}
	return nil, errNotImplemented
}

func (m *Repo) Delete(ctx context.Context, predictionID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, predictionID)
	}
	return nil
}

func (m *Repo) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx)
	}
	return nil
}
