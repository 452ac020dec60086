// Package scoring turns applicant attributes into a credit score, a risk
// tier and, depending on the strategy, a default probability with
// recommendations. Two strategies exist behind one interface: a bucketed
// heuristic and a delegated external model. They do not share thresholds.
package scoring

import (
	"context"
	"errors"

	"credit-risk-engine/internal/domain/application"
)

var (
	// ErrUnavailable: the model service could not be reached or timed out.
	ErrUnavailable = errors.New("model service unavailable")
	// ErrBadResponse: the model service answered with something unparseable.
	ErrBadResponse = errors.New("malformed model response")
)

// Input is the submission-path feature set.
type Input struct {
	EmploymentStatus string
	AnnualIncome     float64
	LoanAmount       float64
	LoanPurpose      string
	CreditHistory    string
}

// Result is what a strategy produces for a submission. Probability and
// Recommendations are only populated by the model path.
type Result struct {
	Score           int
	Tier            application.RiskTier
	Probability     *float64
	Recommendations []string
}

type Scorer interface {
	Score(ctx context.Context, in Input) (*Result, error)
}
