// Package analytics recomputes portfolio statistics on demand. It holds no
// state of its own: every query reads the current record set and returns
// ratios, never pre-formatted percentages. Empty inputs yield zero values,
// not NaN.
package analytics

import (
	"context"
	"sort"
	"time"

	"credit-risk-engine/internal/currency"
	appDomain "credit-risk-engine/internal/domain/application"
	predDomain "credit-risk-engine/internal/domain/prediction"
)

// trendWindow caps the monthly trend series to the most recent months.
const trendWindow = 12

type Usecase struct {
	apps  appDomain.Repository
	preds predDomain.Repository
	conv  *currency.Converter
}

func NewUsecase(apps appDomain.Repository, preds predDomain.Repository, conv *currency.Converter) *Usecase {
	return &Usecase{apps: apps, preds: preds, conv: conv}
}

type TierSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type ScoreBand struct {
	Name  string `json:"name"`
	Low   int    `json:"low"`
	High  int    `json:"high"`
	Count int64  `json:"count"`
}

type MonthlyTrend struct {
	Month        time.Time `json:"month"`
	Applications int64     `json:"applications"`
	ApprovalRate float64   `json:"approval_rate"`
}

// Analysis is the full portfolio picture computed over every application.
type Analysis struct {
	TotalApplications       int64          `json:"total_applications"`
	AverageCreditScore      float64        `json:"average_credit_score"`
	ApprovalRate            float64        `json:"approval_rate"`
	RiskDistribution        []TierSlice    `json:"risk_distribution"`
	CreditScoreDistribution []ScoreBand    `json:"credit_score_distribution"`
	MonthlyTrends           []MonthlyTrend `json:"monthly_trends"`
}

// Fixed histogram edges over the standard score bands.
var scoreBands = []ScoreBand{
	{Name: "Poor", Low: 300, High: 579},
	{Name: "Fair", Low: 580, High: 669},
	{Name: "Good", Low: 670, High: 739},
	{Name: "Very Good", Low: 740, High: 799},
	{Name: "Excellent", Low: 800, High: 850},
}

func bandIndex(score int) int {
	switch {
	case score < 580:
		return 0
	case score < 670:
		return 1
	case score < 740:
		return 2
	case score < 800:
		return 3
	default:
		return 4
	}
}

func (u *Usecase) Analysis(ctx context.Context) (*Analysis, error) {
	apps, err := u.apps.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &Analysis{
		TotalApplications:       int64(len(apps)),
		RiskDistribution:        []TierSlice{},
		CreditScoreDistribution: []ScoreBand{},
		MonthlyTrends:           []MonthlyTrend{},
	}
	if len(apps) == 0 {
		return out, nil
	}

	var (
		scoreSum   int64
		scored     int64
		approved   int64
		tierCounts = map[string]int64{}
		bands      = make([]int64, len(scoreBands))
	)
	type monthAgg struct {
		total    int64
		approved int64
	}
	months := map[time.Time]*monthAgg{}

	for i := range apps {
		a := &apps[i]
		tierCounts[string(a.RiskLevel)]++
		if a.Status == appDomain.StatusApproved {
			approved++
		}
		if a.CreditScore > 0 {
			scoreSum += int64(a.CreditScore)
			scored++
			bands[bandIndex(a.CreditScore)]++
		}

		m := monthOf(a.CreatedAt)
		agg := months[m]
		if agg == nil {
			agg = &monthAgg{}
			months[m] = agg
		}
		agg.total++
		if a.Status == appDomain.StatusApproved {
			agg.approved++
		}
	}

	if scored > 0 {
		out.AverageCreditScore = float64(scoreSum) / float64(scored)
	}
	out.ApprovalRate = ratio(approved, int64(len(apps)))

	// Distribution keyed and ordered by tier name.
	names := make([]string, 0, len(tierCounts))
	for name := range tierCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out.RiskDistribution = append(out.RiskDistribution, TierSlice{Name: name, Value: tierCounts[name]})
	}

	for i, band := range scoreBands {
		if bands[i] == 0 {
			continue
		}
		band.Count = bands[i]
		out.CreditScoreDistribution = append(out.CreditScoreDistribution, band)
	}

	keys := make([]time.Time, 0, len(months))
	for m := range months {
		keys = append(keys, m)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	if len(keys) > trendWindow {
		keys = keys[len(keys)-trendWindow:]
	}
	for _, m := range keys {
		agg := months[m]
		out.MonthlyTrends = append(out.MonthlyTrends, MonthlyTrend{
			Month:        m,
			Applications: agg.total,
			ApprovalRate: ratio(agg.approved, agg.total),
		})
	}

	return out, nil
}

// DashboardStats is the headline card data, computed with aggregate queries
// instead of a full scan. ApprovedAmount is reported in the display currency.
type DashboardStats struct {
	TotalApplications int64            `json:"total_applications"`
	ApprovedAmount    float64          `json:"approved_amount"`
	Currency          string           `json:"currency"`
	AverageScore      float64          `json:"average_score"`
	HighRiskRate      float64          `json:"high_risk_rate"`
	RiskDistribution  map[string]int64 `json:"risk_distribution"`
}

func (u *Usecase) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	total, err := u.apps.Count(ctx)
	if err != nil {
		return nil, err
	}

	out := &DashboardStats{
		Currency: u.conv.Display(),
		RiskDistribution: map[string]int64{
			string(appDomain.TierLow):    0,
			string(appDomain.TierMedium): 0,
			string(appDomain.TierHigh):   0,
		},
	}
	if total == 0 {
		return out, nil
	}
	out.TotalApplications = total

	sum, err := u.apps.SumLoanAmountByStatus(ctx, appDomain.StatusApproved)
	if err != nil {
		return nil, err
	}
	out.ApprovedAmount = u.conv.ToDisplay(sum)

	avg, err := u.apps.AverageCreditScore(ctx)
	if err != nil {
		return nil, err
	}
	out.AverageScore = avg

	tiers, err := u.apps.CountByTier(ctx)
	if err != nil {
		return nil, err
	}
	var high int64
	for _, tc := range tiers {
		out.RiskDistribution[string(tc.Tier)] = tc.Count
		if tc.Tier == appDomain.TierHigh {
			high = tc.Count
		}
	}
	out.HighRiskRate = ratio(high, total)

	return out, nil
}

// PredictionStats summarizes the prediction log. The log has no score field,
// so no mean score is reported here.
type PredictionStats struct {
	Total               int64   `json:"total"`
	HighRisk            int64   `json:"high_risk"`
	LowRisk             int64   `json:"low_risk"`
	HighRiskRate        float64 `json:"high_risk_rate"`
	LowRiskRate         float64 `json:"low_risk_rate"`
	AvgProbabilityGood  float64 `json:"avg_probability_good"`
	AvgProbabilityBad   float64 `json:"avg_probability_bad"`
}

func (u *Usecase) PredictionStats(ctx context.Context) (*PredictionStats, error) {
	logs, err := u.preds.ListRecent(ctx, 0)
	if err != nil {
		return nil, err
	}

	out := &PredictionStats{Total: int64(len(logs))}
	if len(logs) == 0 {
		return out, nil
	}

	var sumGood, sumBad float64
	for i := range logs {
		if logs[i].Prediction == predDomain.OutcomeBad {
			out.HighRisk++
		} else {
			out.LowRisk++
		}
		sumGood += logs[i].ProbabilityGood
		sumBad += logs[i].ProbabilityBad
	}
	out.HighRiskRate = ratio(out.HighRisk, out.Total)
	out.LowRiskRate = ratio(out.LowRisk, out.Total)
	out.AvgProbabilityGood = sumGood / float64(len(logs))
	out.AvgProbabilityBad = sumBad / float64(len(logs))

	return out, nil
}

func ratio(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func monthOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
