package application

import (
	"time"

	"gorm.io/gorm"
)

// RiskTier buckets default likelihood. The heuristic path derives it from the
// score; the model path supplies it directly and the two are not required to
// agree on thresholds.
type RiskTier string

const (
	TierLow    RiskTier = "Low"
	TierMedium RiskTier = "Medium"
	TierHigh   RiskTier = "High"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusReview   Status = "Review"
	StatusApproved Status = "Approved"
	StatusDeclined Status = "Declined"
)

// Credit-history buckets accepted by the heuristic scorer. Anything else
// falls back to the default score range rather than failing.
const (
	HistoryExcellent = "excellent"
	HistoryGood      = "good"
	HistoryFair      = "fair"
	HistoryPoor      = "poor"
	HistoryBad       = "bad"
	HistoryNone      = "no-history"
)

type Application struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID string `gorm:"size:16;uniqueIndex:ux_applications_application_id" json:"application_id"`

	// Applicant attributes; pass-through, never interpreted by the engine.
	FirstName        string `gorm:"size:128" json:"first_name"`
	LastName         string `gorm:"size:128" json:"last_name"`
	Email            string `gorm:"size:255" json:"email"`
	Phone            string `gorm:"size:32" json:"phone"`
	Address          string `gorm:"type:text" json:"address"`
	EmploymentStatus string `gorm:"size:32" json:"employment_status"`

	// Monetary fields are stored in the canonical currency.
	AnnualIncome  float64 `gorm:"type:decimal(18,2)" json:"annual_income"`
	LoanAmount    float64 `gorm:"type:decimal(18,2)" json:"loan_amount"`
	InterestRate  float64 `gorm:"type:decimal(6,4)" json:"interest_rate"`
	Turnover      float64 `gorm:"type:decimal(18,2)" json:"turnover"`
	LoanPurpose   string  `gorm:"size:64" json:"loan_purpose"`
	CreditHistory string  `gorm:"size:32" json:"credit_history"`

	AdditionalNotes string `gorm:"type:text" json:"additional_notes"`

	// Derived at creation, never recomputed afterwards.
	CreditScore     int      `gorm:"column:credit_score" json:"credit_score"`
	RiskLevel       RiskTier `gorm:"size:16;column:risk_level" json:"risk_level"`
	Probability     *float64 `gorm:"type:decimal(7,6)" json:"probability,omitempty"`
	Recommendations string   `gorm:"type:text" json:"recommendations,omitempty"`

	Status    Status         `gorm:"size:16;default:'Pending'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Application) TableName() string { return "applications" }
