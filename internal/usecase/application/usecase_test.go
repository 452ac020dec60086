package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"credit-risk-engine/internal/currency"
	domain "credit-risk-engine/internal/domain/application"
	"credit-risk-engine/internal/scoring"
	"credit-risk-engine/internal/testutil/appmock"
)

// ----- test doubles -----

type stubScorer struct {
	res *scoring.Result
	err error
}

func (s stubScorer) Score(_ context.Context, _ scoring.Input) (*scoring.Result, error) {
	return s.res, s.err
}

func xofConverter(t *testing.T) *currency.Converter {
	t.Helper()
	conv, err := currency.NewConverter("XOF", "XOF", 0)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	return conv
}

func validInput() SubmitInput {
	return SubmitInput{
		FirstName:        "Awa",
		LastName:         "Diallo",
		Email:            "awa.diallo@example.com",
		EmploymentStatus: "employed",
		AnnualIncome:     4_800_000,
		LoanAmount:       1_500_000,
		InterestRate:     0.08,
		LoanPurpose:      "business",
		CreditHistory:    domain.HistoryExcellent,
	}
}

// ----- tests -----

func TestSubmit_ExcellentHistory_ApprovedLowRisk(t *testing.T) {
	var created *domain.Application
	uc := NewUsecase(&appmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			a.CreatedAt = time.Now().UTC()
			created = a
			return nil
		},
	}, scoring.NewHeuristic(), xofConverter(t), zerolog.Nop())

	dto, err := uc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if dto.CreditScore < 750 || dto.CreditScore > 850 {
		t.Fatalf("score = %d, want within [750,850]", dto.CreditScore)
	}
	if dto.RiskLevel != string(domain.TierLow) {
		t.Fatalf("risk = %s, want Low", dto.RiskLevel)
	}
	if dto.Status != string(domain.StatusApproved) {
		t.Fatalf("status = %s, want Approved", dto.Status)
	}
	if created == nil || created.ApplicationID != dto.ApplicationID {
		t.Fatalf("persisted record does not match DTO")
	}
}

func TestSubmit_BadHistory_DeclinedHighRisk(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{}, scoring.NewHeuristic(), xofConverter(t), zerolog.Nop())

	in := validInput()
	in.CreditHistory = domain.HistoryBad
	dto, err := uc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if dto.CreditScore < 500 || dto.CreditScore > 599 {
		t.Fatalf("score = %d, want within [500,599]", dto.CreditScore)
	}
	if dto.RiskLevel != string(domain.TierHigh) {
		t.Fatalf("risk = %s, want High", dto.RiskLevel)
	}
	if dto.Status != string(domain.StatusDeclined) {
		t.Fatalf("status = %s, want Declined", dto.Status)
	}
}

func TestSubmit_ScoringFailure_NothingPersisted(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			t.Fatal("Create must not be called when scoring fails")
			return nil
		},
	}, stubScorer{err: scoring.ErrUnavailable}, xofConverter(t), zerolog.Nop())

	_, err := uc.Submit(context.Background(), validInput())
	if !errors.Is(err, domain.ErrScoring) {
		t.Fatalf("err = %v, want ErrScoring", err)
	}
}

func TestSubmit_IDCollision_RetriesThenSucceeds(t *testing.T) {
	var attempts int
	seen := map[string]bool{}
	uc := NewUsecase(&appmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			attempts++
			seen[a.ApplicationID] = true
			if attempts <= 2 {
				return gorm.ErrDuplicatedKey
			}
			return nil
		},
	}, scoring.NewHeuristic(), xofConverter(t), zerolog.Nop())

	dto, err := uc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
	if dto.ApplicationID == "" {
		t.Fatal("DTO is missing the application id")
	}
}

func TestSubmit_IDCollision_Exhausted(t *testing.T) {
	var attempts int
	uc := NewUsecase(&appmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			attempts++
			return gorm.ErrDuplicatedKey
		},
	}, scoring.NewHeuristic(), xofConverter(t), zerolog.Nop())

	_, err := uc.Submit(context.Background(), validInput())
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if attempts != maxIDAttempts {
		t.Fatalf("attempts = %d, want %d", attempts, maxIDAttempts)
	}
}

func TestSubmit_ValidationFailure(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			t.Fatal("Create must not be called on invalid input")
			return nil
		},
	}, scoring.NewHeuristic(), xofConverter(t), zerolog.Nop())

	cases := []SubmitInput{
		{},
		func() SubmitInput { in := validInput(); in.Email = ""; return in }(),
		func() SubmitInput { in := validInput(); in.LoanAmount = 0; return in }(),
		func() SubmitInput { in := validInput(); in.AnnualIncome = -1; return in }(),
	}
	for i, in := range cases {
		if _, err := uc.Submit(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: err = %v, want ErrValidation", i, err)
		}
	}
}

func TestSubmit_NormalizesMoneyToCanonical(t *testing.T) {
	conv, err := currency.NewConverter("XOF", "USD", 600)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	var stored *domain.Application
	uc := NewUsecase(&appmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			stored = a
			return nil
		},
	}, scoring.NewHeuristic(), conv, zerolog.Nop())

	in := validInput()
	in.LoanAmount = 100 // USD
	in.AnnualIncome = 250
	dto, err := uc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if stored.LoanAmount != 60000 {
		t.Fatalf("stored loan = %v XOF, want 60000", stored.LoanAmount)
	}
	if stored.AnnualIncome != 150000 {
		t.Fatalf("stored income = %v XOF, want 150000", stored.AnnualIncome)
	}
	// DTO reports back in the display currency
	if dto.LoanAmount != 100 || dto.Currency != "USD" {
		t.Fatalf("dto loan = %v %s, want 100 USD", dto.LoanAmount, dto.Currency)
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	now := time.Now().UTC()
	rec := &domain.Application{
		ApplicationID: "APP0042",
		RiskLevel:     domain.TierLow,
		Status:        domain.StatusApproved,
		CreatedAt:     now.Add(-time.Hour),
		UpdatedAt:     now.Add(-time.Hour),
	}
	uc := NewUsecase(&appmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*domain.Application, error) {
			return rec, nil
		},
		UpdateStatusFn: func(ctx context.Context, id string, status domain.Status) (*domain.Application, error) {
			updated := *rec
			updated.Status = status
			updated.UpdatedAt = time.Now().UTC()
			return &updated, nil
		},
	}, scoring.NewHeuristic(), xofConverter(t), zerolog.Nop())

	dto, err := uc.UpdateStatus(context.Background(), "APP0042", domain.StatusDeclined)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if dto.Status != string(domain.StatusDeclined) {
		t.Fatalf("status = %s, want Declined", dto.Status)
	}
	if !dto.UpdatedAt.After(rec.UpdatedAt) {
		t.Fatal("updated_at was not bumped")
	}
	// score and tier are untouched by a status change
	if dto.RiskLevel != string(domain.TierLow) {
		t.Fatalf("risk = %s, want Low", dto.RiskLevel)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*domain.Application, error) {
			return nil, domain.ErrNotFound
		},
	}, scoring.NewHeuristic(), xofConverter(t), zerolog.Nop())

	_, err := uc.UpdateStatus(context.Background(), "APP9999", domain.StatusApproved)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatus_RejectsUnknownState(t *testing.T) {
	uc := NewUsecase(&appmock.Repo{}, scoring.NewHeuristic(), xofConverter(t), zerolog.Nop())
	_, err := uc.UpdateStatus(context.Background(), "APP0001", "Archived")
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}
