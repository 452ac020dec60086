package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-risk-engine/internal/currency"
	appDomain "credit-risk-engine/internal/domain/application"
	predDomain "credit-risk-engine/internal/domain/prediction"
	"credit-risk-engine/internal/testutil/appmock"
	"credit-risk-engine/internal/testutil/predmock"
)

func testConverter(t *testing.T) *currency.Converter {
	t.Helper()
	conv, err := currency.NewConverter("XOF", "XOF", 0)
	require.NoError(t, err)
	return conv
}

func appWith(tier appDomain.RiskTier, score int, createdAt time.Time) appDomain.Application {
	return appDomain.Application{
		RiskLevel:   tier,
		CreditScore: score,
		Status:      appDomain.StatusForTier(tier),
		CreatedAt:   createdAt,
	}
}

func TestAnalysis_EmptySet_AllZeros(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{
		ListAllFn: func(ctx context.Context) ([]appDomain.Application, error) { return nil, nil },
	}, &predmock.Repo{}, testConverter(t))

	got, err := uc.Analysis(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.TotalApplications)
	assert.Zero(t, got.AverageCreditScore)
	assert.Zero(t, got.ApprovalRate) // 0, never NaN
	assert.Empty(t, got.RiskDistribution)
	assert.Empty(t, got.CreditScoreDistribution)
	assert.Empty(t, got.MonthlyTrends)
}

func TestAnalysis_DistributionAndApprovalRate(t *testing.T) {
	// 7 Low, 2 Medium, 1 High; Low maps to Approved, no overrides.
	now := time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC)
	var apps []appDomain.Application
	for i := 0; i < 7; i++ {
		apps = append(apps, appWith(appDomain.TierLow, 720, now))
	}
	for i := 0; i < 2; i++ {
		apps = append(apps, appWith(appDomain.TierMedium, 650, now))
	}
	apps = append(apps, appWith(appDomain.TierHigh, 540, now))

	uc := NewUsecase(&appmock.Repo{
		ListAllFn: func(ctx context.Context) ([]appDomain.Application, error) { return apps, nil },
	}, &predmock.Repo{}, testConverter(t))

	got, err := uc.Analysis(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 10, got.TotalApplications)
	assert.InDelta(t, 0.7, got.ApprovalRate, 1e-9)
	// ordered by tier name
	require.Len(t, got.RiskDistribution, 3)
	assert.Equal(t, TierSlice{Name: "High", Value: 1}, got.RiskDistribution[0])
	assert.Equal(t, TierSlice{Name: "Low", Value: 7}, got.RiskDistribution[1])
	assert.Equal(t, TierSlice{Name: "Medium", Value: 2}, got.RiskDistribution[2])
}

func TestAnalysis_ScoreHistogramBands(t *testing.T) {
	now := time.Now().UTC()
	apps := []appDomain.Application{
		appWith(appDomain.TierHigh, 540, now),   // Poor
		appWith(appDomain.TierHigh, 579, now),   // Poor
		appWith(appDomain.TierMedium, 580, now), // Fair
		appWith(appDomain.TierMedium, 669, now), // Fair
		appWith(appDomain.TierLow, 670, now),    // Good
		appWith(appDomain.TierLow, 739, now),    // Good
		appWith(appDomain.TierLow, 740, now),    // Very Good
		appWith(appDomain.TierLow, 799, now),    // Very Good
		appWith(appDomain.TierLow, 800, now),    // Excellent
		appWith(appDomain.TierLow, 850, now),    // Excellent
	}

	uc := NewUsecase(&appmock.Repo{
		ListAllFn: func(ctx context.Context) ([]appDomain.Application, error) { return apps, nil },
	}, &predmock.Repo{}, testConverter(t))

	got, err := uc.Analysis(context.Background())
	require.NoError(t, err)
	require.Len(t, got.CreditScoreDistribution, 5)
	names := []string{"Poor", "Fair", "Good", "Very Good", "Excellent"}
	for i, band := range got.CreditScoreDistribution {
		assert.Equal(t, names[i], band.Name)
		assert.EqualValues(t, 2, band.Count, "band %s", band.Name)
	}
}

func TestAnalysis_MonthlyTrends_SortedAndWindowed(t *testing.T) {
	// 15 months of records, newest last created first in the slice; the
	// series must come back ascending and capped at 12.
	var apps []appDomain.Application
	base := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		m := base.AddDate(0, i, 0)
		apps = append(apps, appWith(appDomain.TierLow, 720, m))
		apps = append(apps, appWith(appDomain.TierHigh, 540, m))
	}

	uc := NewUsecase(&appmock.Repo{
		ListAllFn: func(ctx context.Context) ([]appDomain.Application, error) { return apps, nil },
	}, &predmock.Repo{}, testConverter(t))

	got, err := uc.Analysis(context.Background())
	require.NoError(t, err)
	require.Len(t, got.MonthlyTrends, 12)
	for i := 1; i < len(got.MonthlyTrends); i++ {
		assert.True(t, got.MonthlyTrends[i-1].Month.Before(got.MonthlyTrends[i].Month),
			"series must be ascending")
	}
	// the oldest 3 months fell out of the window
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), got.MonthlyTrends[0].Month)
	for _, tr := range got.MonthlyTrends {
		assert.EqualValues(t, 2, tr.Applications)
		assert.InDelta(t, 0.5, tr.ApprovalRate, 1e-9)
	}
}

func TestDashboardStats(t *testing.T) {
	conv, err := currency.NewConverter("XOF", "USD", 600)
	require.NoError(t, err)

	uc := NewUsecase(&appmock.Repo{
		CountFn: func(ctx context.Context) (int64, error) { return 4, nil },
		SumLoanAmountByStatusFn: func(ctx context.Context, status appDomain.Status) (float64, error) {
			assert.Equal(t, appDomain.StatusApproved, status)
			return 1_200_000, nil // XOF
		},
		AverageCreditScoreFn: func(ctx context.Context) (float64, error) { return 688.5, nil },
		CountByTierFn: func(ctx context.Context) ([]appDomain.TierCount, error) {
			return []appDomain.TierCount{
				{Tier: appDomain.TierHigh, Count: 1},
				{Tier: appDomain.TierLow, Count: 2},
				{Tier: appDomain.TierMedium, Count: 1},
			}, nil
		},
	}, &predmock.Repo{}, conv)

	got, err := uc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, got.TotalApplications)
	assert.InDelta(t, 2000, got.ApprovedAmount, 1e-9) // converted to USD
	assert.Equal(t, "USD", got.Currency)
	assert.InDelta(t, 688.5, got.AverageScore, 1e-9)
	assert.InDelta(t, 0.25, got.HighRiskRate, 1e-9)
	assert.EqualValues(t, 2, got.RiskDistribution["Low"])
	assert.EqualValues(t, 1, got.RiskDistribution["Medium"])
	assert.EqualValues(t, 1, got.RiskDistribution["High"])
}

func TestDashboardStats_Empty(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{
		CountFn: func(ctx context.Context) (int64, error) { return 0, nil },
	}, &predmock.Repo{}, testConverter(t))

	got, err := uc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.TotalApplications)
	assert.Zero(t, got.HighRiskRate)
	// fixed keys are present even with no data
	assert.Contains(t, got.RiskDistribution, "Low")
	assert.Contains(t, got.RiskDistribution, "Medium")
	assert.Contains(t, got.RiskDistribution, "High")
}

func TestPredictionStats(t *testing.T) {
	logs := []predDomain.PredictionLog{
		{Prediction: predDomain.OutcomeBad, ProbabilityGood: 0.2, ProbabilityBad: 0.8},
		{Prediction: predDomain.OutcomeGood, ProbabilityGood: 0.9, ProbabilityBad: 0.1},
		{Prediction: predDomain.OutcomeGood, ProbabilityGood: 0.7, ProbabilityBad: 0.3},
		{Prediction: predDomain.OutcomeGood, ProbabilityGood: 0.8, ProbabilityBad: 0.2},
	}
	uc := NewUsecase(&appmock.Repo{}, &predmock.Repo{
		ListRecentFn: func(ctx context.Context, limit int) ([]predDomain.PredictionLog, error) {
			assert.Zero(t, limit, "stats must read the full log")
			return logs, nil
		},
	}, testConverter(t))

	got, err := uc.PredictionStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, got.Total)
	assert.EqualValues(t, 1, got.HighRisk)
	assert.EqualValues(t, 3, got.LowRisk)
	assert.InDelta(t, 0.25, got.HighRiskRate, 1e-9)
	assert.InDelta(t, 0.75, got.LowRiskRate, 1e-9)
	assert.InDelta(t, 0.65, got.AvgProbabilityGood, 1e-9)
	assert.InDelta(t, 0.35, got.AvgProbabilityBad, 1e-9)
}

func TestPredictionStats_Empty(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{}, &predmock.Repo{
		ListRecentFn: func(ctx context.Context, limit int) ([]predDomain.PredictionLog, error) {
			return nil, nil
		},
	}, testConverter(t))

	got, err := uc.PredictionStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.HighRiskRate)
	assert.Zero(t, got.AvgProbabilityGood)
}
