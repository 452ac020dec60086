package prediction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appDomain "credit-risk-engine/internal/domain/application"
	domain "credit-risk-engine/internal/domain/prediction"
	"credit-risk-engine/internal/scoring"
)

// Predictor is the slice of the model client this usecase needs.
type Predictor interface {
	Predict(ctx context.Context, f scoring.Features) (*scoring.PredictResult, error)
}

type Usecase struct {
	repo  domain.Repository
	model Predictor
	log   zerolog.Logger
}

func NewUsecase(repo domain.Repository, model Predictor, log zerolog.Logger) *Usecase {
	return &Usecase{repo: repo, model: model, log: log.With().Str("usecase", "prediction").Logger()}
}

type AssessInput struct {
	Age                int     `json:"age"`
	Income             float64 `json:"income"`
	LoanAmount         float64 `json:"loan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	Turnover           float64 `json:"turnover"`
	CustomerTenure     int     `json:"customer_tenure"`
	NumLatePayments    int     `json:"num_late_payments"`
	UnpaidAmount       float64 `json:"unpaid_amount"`
	IndustrySector     string  `json:"industry_sector"`
	CreditType         string  `json:"credit_type"`
	HasGuarantee       bool    `json:"has_guarantee"`
	GuaranteeType      string  `json:"guarantee_type"`
	RepaymentFrequency string  `json:"repayment_frequency"`
}

type PredictionDTO struct {
	PredictionID    string      `json:"prediction_id"`
	Input           AssessInput `json:"input"`
	Prediction      int         `json:"prediction"`
	ProbabilityGood float64     `json:"probability_good"`
	ProbabilityBad  float64     `json:"probability_bad"`
	RiskLabel       string      `json:"risk_label"`
	CreatedAt       time.Time   `json:"created_at"`
}

func (in AssessInput) validate() error {
	if in.Age < 18 {
		return fmt.Errorf("%w: age must be at least 18", appDomain.ErrValidation)
	}
	if in.LoanAmount <= 0 {
		return fmt.Errorf("%w: loan_amount must be positive", appDomain.ErrValidation)
	}
	if in.Income < 0 || in.UnpaidAmount < 0 {
		return fmt.Errorf("%w: amounts must not be negative", appDomain.ErrValidation)
	}
	return nil
}

// Assess delegates the extended feature set to the model and appends the
// outcome to the prediction log. Entries are immutable once written.
func (u *Usecase) Assess(ctx context.Context, in AssessInput) (*PredictionDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	res, err := u.model.Predict(ctx, scoring.Features{
		Age:                in.Age,
		Income:             in.Income,
		LoanAmount:         in.LoanAmount,
		InterestRate:       in.InterestRate,
		Turnover:           in.Turnover,
		CustomerTenure:     in.CustomerTenure,
		NumLatePayments:    in.NumLatePayments,
		UnpaidAmount:       in.UnpaidAmount,
		IndustrySector:     in.IndustrySector,
		CreditType:         in.CreditType,
		HasGuarantee:       in.HasGuarantee,
		GuaranteeType:      in.GuaranteeType,
		RepaymentFrequency: in.RepaymentFrequency,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appDomain.ErrScoring, err)
	}

	p := &domain.PredictionLog{
		PredictionID:       uuid.NewString(),
		Age:                in.Age,
		Income:             in.Income,
		LoanAmount:         in.LoanAmount,
		InterestRate:       in.InterestRate,
		Turnover:           in.Turnover,
		CustomerTenure:     in.CustomerTenure,
		NumLatePayments:    in.NumLatePayments,
		UnpaidAmount:       in.UnpaidAmount,
		IndustrySector:     in.IndustrySector,
		CreditType:         in.CreditType,
		HasGuarantee:       in.HasGuarantee,
		GuaranteeType:      in.GuaranteeType,
		RepaymentFrequency: in.RepaymentFrequency,
		Prediction:         domain.Outcome(res.Prediction),
		ProbabilityGood:    res.ProbabilityGood,
		ProbabilityBad:     res.ProbabilityBad,
		RiskLabel:          res.RiskLabel,
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	u.log.Info().
		Str("prediction_id", p.PredictionID).
		Int("prediction", res.Prediction).
		Str("risk_label", res.RiskLabel).
		Msg("prediction logged")

	return toDTO(p), nil
}

func (u *Usecase) Get(ctx context.Context, predictionID string) (*PredictionDTO, error) {
	p, err := u.repo.GetByPredictionID(ctx, predictionID)
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

// ListRecent returns the newest entries first, capped at limit when positive.
func (u *Usecase) ListRecent(ctx context.Context, limit int) ([]PredictionDTO, error) {
	logs, err := u.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]PredictionDTO, 0, len(logs))
	for i := range logs {
		out = append(out, *toDTO(&logs[i]))
	}
	return out, nil
}

func (u *Usecase) Delete(ctx context.Context, predictionID string) error {
	return u.repo.Delete(ctx, predictionID)
}

func (u *Usecase) Clear(ctx context.Context) error {
	return u.repo.DeleteAll(ctx)
}

func toDTO(p *domain.PredictionLog) *PredictionDTO {
	return &PredictionDTO{
		PredictionID: p.PredictionID,
		Input: AssessInput{
			Age:                p.Age,
			Income:             p.Income,
			LoanAmount:         p.LoanAmount,
			InterestRate:       p.InterestRate,
			Turnover:           p.Turnover,
			CustomerTenure:     p.CustomerTenure,
			NumLatePayments:    p.NumLatePayments,
			UnpaidAmount:       p.UnpaidAmount,
			IndustrySector:     p.IndustrySector,
			CreditType:         p.CreditType,
			HasGuarantee:       p.HasGuarantee,
			GuaranteeType:      p.GuaranteeType,
			RepaymentFrequency: p.RepaymentFrequency,
		},
		Prediction:      int(p.Prediction),
		ProbabilityGood: p.ProbabilityGood,
		ProbabilityBad:  p.ProbabilityBad,
		RiskLabel:       p.RiskLabel,
		CreatedAt:       p.CreatedAt,
	}
}
