package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"credit-risk-engine/internal/currency"
	domain "credit-risk-engine/internal/domain/application"
	"credit-risk-engine/internal/scoring"
	"credit-risk-engine/pkg/id"
)

// maxIDAttempts bounds the regenerate-and-retry loop on application id
// collisions before the conflict is surfaced to the caller.
const maxIDAttempts = 5

type Usecase struct {
	repo   domain.Repository
	scorer scoring.Scorer
	conv   *currency.Converter
	log    zerolog.Logger
}

func NewUsecase(repo domain.Repository, scorer scoring.Scorer, conv *currency.Converter, log zerolog.Logger) *Usecase {
	return &Usecase{repo: repo, scorer: scorer, conv: conv, log: log.With().Str("usecase", "application").Logger()}
}

// SubmitInput carries operator-entered values; monetary amounts are in the
// display currency and converted to canonical before persistence.
type SubmitInput struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	EmploymentStatus string  `json:"employment_status"`
	AnnualIncome     float64 `json:"annual_income"`
	LoanAmount       float64 `json:"loan_amount"`
	InterestRate     float64 `json:"interest_rate"`
	Turnover         float64 `json:"turnover"`
	LoanPurpose      string  `json:"loan_purpose"`
	CreditHistory    string  `json:"credit_history"`
	AdditionalNotes  string  `json:"additional_notes"`
}

type ApplicationDTO struct {
	ApplicationID    string    `json:"application_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	EmploymentStatus string    `json:"employment_status"`
	AnnualIncome     float64   `json:"annual_income"`
	LoanAmount       float64   `json:"loan_amount"`
	InterestRate     float64   `json:"interest_rate"`
	Turnover         float64   `json:"turnover"`
	Currency         string    `json:"currency"`
	LoanPurpose      string    `json:"loan_purpose"`
	CreditHistory    string    `json:"credit_history"`
	AdditionalNotes  string    `json:"additional_notes,omitempty"`
	CreditScore      int       `json:"credit_score"`
	RiskLevel        string    `json:"risk_level"`
	Probability      *float64  `json:"probability,omitempty"`
	Recommendations  string    `json:"recommendations,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (in SubmitInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(in.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(in.CreditHistory) == "" {
		missing = append(missing, "credit_history")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if in.LoanAmount <= 0 {
		return fmt.Errorf("%w: loan_amount must be positive", domain.ErrValidation)
	}
	if in.AnnualIncome < 0 {
		return fmt.Errorf("%w: annual_income must not be negative", domain.ErrValidation)
	}
	return nil
}

// Submit runs the full decision workflow: score via the configured strategy,
// derive tier and status, normalize money to the canonical currency, assign a
// display id and persist. Scoring failures abort the submission; nothing is
// persisted with a partial score/tier/status triple.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	res, err := u.scorer.Score(ctx, scoring.Input{
		EmploymentStatus: in.EmploymentStatus,
		AnnualIncome:     in.AnnualIncome,
		LoanAmount:       in.LoanAmount,
		LoanPurpose:      in.LoanPurpose,
		CreditHistory:    in.CreditHistory,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrScoring, err)
	}

	a := &domain.Application{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		Address:          in.Address,
		EmploymentStatus: in.EmploymentStatus,
		AnnualIncome:     u.conv.ToCanonical(in.AnnualIncome),
		LoanAmount:       u.conv.ToCanonical(in.LoanAmount),
		InterestRate:     in.InterestRate,
		Turnover:         u.conv.ToCanonical(in.Turnover),
		LoanPurpose:      in.LoanPurpose,
		CreditHistory:    in.CreditHistory,
		AdditionalNotes:  in.AdditionalNotes,
		CreditScore:      res.Score,
		RiskLevel:        res.Tier,
		Probability:      res.Probability,
		Recommendations:  strings.Join(res.Recommendations, "\n"),
		Status:           domain.StatusForTier(res.Tier),
	}

	// The display id keyspace is small; regenerate on unique-key conflict.
	for attempt := 1; ; attempt++ {
		a.ApplicationID = id.NewApplicationID()
		err = u.repo.Create(ctx, a)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		if attempt >= maxIDAttempts {
			return nil, fmt.Errorf("%w: gave up after %d attempts", domain.ErrConflict, attempt)
		}
		u.log.Warn().Str("application_id", a.ApplicationID).Int("attempt", attempt).Msg("application id collision, regenerating")
	}

	u.log.Info().
		Str("application_id", a.ApplicationID).
		Int("credit_score", a.CreditScore).
		Str("risk_level", string(a.RiskLevel)).
		Str("status", string(a.Status)).
		Msg("application submitted")

	return u.toDTO(a), nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return u.toDTO(a), nil
}

func (u *Usecase) List(ctx context.Context) ([]ApplicationDTO, error) {
	apps, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *u.toDTO(&apps[i]))
	}
	return out, nil
}

// UpdateStatus applies an explicit operator transition. Score and tier are
// never recomputed here; only the status and updated_at change.
func (u *Usecase) UpdateStatus(ctx context.Context, applicationID string, status domain.Status) (*ApplicationDTO, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	cur, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(cur.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatus, cur.Status, status)
	}
	a, err := u.repo.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("application_id", applicationID).Str("from", string(cur.Status)).Str("to", string(status)).Msg("status updated")
	return u.toDTO(a), nil
}

// toDTO converts stored canonical amounts into the display currency.
func (u *Usecase) toDTO(a *domain.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:    a.ApplicationID,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		Phone:            a.Phone,
		Address:          a.Address,
		EmploymentStatus: a.EmploymentStatus,
		AnnualIncome:     u.conv.ToDisplay(a.AnnualIncome),
		LoanAmount:       u.conv.ToDisplay(a.LoanAmount),
		InterestRate:     a.InterestRate,
		Turnover:         u.conv.ToDisplay(a.Turnover),
		Currency:         u.conv.Display(),
		LoanPurpose:      a.LoanPurpose,
		CreditHistory:    a.CreditHistory,
		AdditionalNotes:  a.AdditionalNotes,
		CreditScore:      a.CreditScore,
		RiskLevel:        string(a.RiskLevel),
		Probability:      a.Probability,
		Recommendations:  a.Recommendations,
		Status:           string(a.Status),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
