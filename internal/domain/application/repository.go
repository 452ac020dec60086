package application

import "context"

// TierCount is one row of a group-by over risk tiers.
type TierCount struct {
	Tier  RiskTier
	Count int64
}

// StatusCount is one row of a group-by over statuses.
type StatusCount struct {
	Status Status
	Count  int64
}

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// UpdateStatus performs a single conditional write on the row identified
	// by applicationID and returns ErrNotFound when no row matched.
	UpdateStatus(ctx context.Context, applicationID string, status Status) (*Application, error)
	ListAll(ctx context.Context) ([]Application, error)

	// Aggregate-friendly reads for the dashboard.
	Count(ctx context.Context) (int64, error)
	SumLoanAmountByStatus(ctx context.Context, status Status) (float64, error)
	AverageCreditScore(ctx context.Context) (float64, error)
	CountByTier(ctx context.Context) ([]TierCount, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}
