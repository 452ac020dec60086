package prediction

import "context"

type Repository interface {
	Create(ctx context.Context, p *PredictionLog) error
	GetByPredictionID(ctx context.Context, predictionID string) (*PredictionLog, error)
	// ListRecent returns up to limit entries, newest first. limit <= 0 means
	// no limit.
	ListRecent(ctx context.Context, limit int) ([]PredictionLog, error)
	// Delete removes one entry and returns ErrNotFound when nothing matched.
	Delete(ctx context.Context, predictionID string) error
	DeleteAll(ctx context.Context) error
}
