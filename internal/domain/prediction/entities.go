package prediction

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("prediction not found")

// Outcome is the binary label produced by the default model.
type Outcome int

const (
	OutcomeGood Outcome = 0 // likely to repay
	OutcomeBad  Outcome = 1 // likely to default
)

// PredictionLog pairs one extended feature set with the model output. Entries
// are append-only: created on every scoring call, never updated, deletable
// individually or in bulk.
type PredictionLog struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	PredictionID string `gorm:"size:36;uniqueIndex:ux_predictions_prediction_id" json:"prediction_id"`

	// Feature snapshot.
	Age                 int     `json:"age"`
	Income              float64 `gorm:"type:decimal(18,2)" json:"income"`
	LoanAmount          float64 `gorm:"type:decimal(18,2)" json:"loan_amount"`
	InterestRate        float64 `gorm:"type:decimal(6,4)" json:"interest_rate"`
	Turnover            float64 `gorm:"type:decimal(18,2)" json:"turnover"`
	CustomerTenure      int     `json:"customer_tenure"`
	NumLatePayments     int     `gorm:"column:num_late_payments" json:"num_late_payments"`
	UnpaidAmount        float64 `gorm:"type:decimal(18,2)" json:"unpaid_amount"`
	IndustrySector      string  `gorm:"size:64" json:"industry_sector"`
	CreditType          string  `gorm:"size:64" json:"credit_type"`
	HasGuarantee        bool    `json:"has_guarantee"`
	GuaranteeType       string  `gorm:"size:64" json:"guarantee_type"`
	RepaymentFrequency  string  `gorm:"size:32" json:"repayment_frequency"`

	// Model output.
	Prediction      Outcome `json:"prediction"`
	ProbabilityGood float64 `gorm:"type:decimal(7,6)" json:"probability_good"`
	ProbabilityBad  float64 `gorm:"type:decimal(7,6)" json:"probability_bad"`
	RiskLabel       string  `gorm:"size:32" json:"risk_label"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PredictionLog) TableName() string { return "prediction_logs" }
