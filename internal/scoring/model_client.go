package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"credit-risk-engine/internal/domain/application"
)

// ModelClient is an HTTP client for the external credit-scoring service.
// Every call is bounded by the configured timeout; a non-2xx status or
// unparseable body is a hard failure, never a partial result.
type ModelClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func NewModelClient(baseURL string, timeout time.Duration, log zerolog.Logger) *ModelClient {
	return &ModelClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "model").Logger(),
	}
}

// Request/response types mirror the scoring service API.

type analyzeRequest struct {
	EmploymentStatus string  `json:"employment_status"`
	AnnualIncome     float64 `json:"annual_income"`
	LoanAmount       float64 `json:"loan_amount"`
	LoanPurpose      string  `json:"loan_purpose"`
	CreditHistory    string  `json:"credit_history"`
}

type analyzeResponse struct {
	CreditScore     int      `json:"credit_score"`
	RiskLevel       string   `json:"risk_level"`
	Probability     float64  `json:"probability"`
	Recommendations []string `json:"recommendations"`
	Error           string   `json:"error"`
}

// Features is the extended feature set of the prediction-log path.
type Features struct {
	Age                int     `json:"age"`
	Income             float64 `json:"income"`
	LoanAmount         float64 `json:"loan_amount"`
	InterestRate       float64 `json:"interest_rate"`
	Turnover           float64 `json:"turnover"`
	CustomerTenure     int     `json:"customer_tenure"`
	NumLatePayments    int     `json:"num_late_payments_current"`
	UnpaidAmount       float64 `json:"unpaid_amount"`
	IndustrySector     string  `json:"industry_sector"`
	CreditType         string  `json:"credit_type"`
	HasGuarantee       bool    `json:"has_guarantee"`
	GuaranteeType      string  `json:"guarantee_type"`
	RepaymentFrequency string  `json:"repayment_frequency"`
}

// PredictResult is the binary-label output of the default model.
type PredictResult struct {
	Prediction      int     `json:"prediction"`
	ProbabilityGood float64 `json:"probability_good"`
	ProbabilityBad  float64 `json:"probability_bad"`
	RiskLabel       string  `json:"risk_level"`
}

// Score implements Scorer by delegating the submission feature set to the
// service's /analyze endpoint. The returned tier is the service's own label;
// it is not re-derived from the score.
func (c *ModelClient) Score(ctx context.Context, in Input) (*Result, error) {
	var out analyzeResponse
	if err := c.post(ctx, "/analyze", analyzeRequest(in), &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrBadResponse, out.Error)
	}
	tier := application.RiskTier(out.RiskLevel)
	switch tier {
	case application.TierLow, application.TierMedium, application.TierHigh:
	default:
		return nil, fmt.Errorf("%w: unknown risk level %q", ErrBadResponse, out.RiskLevel)
	}
	p := out.Probability
	return &Result{
		Score:           out.CreditScore,
		Tier:            tier,
		Probability:     &p,
		Recommendations: out.Recommendations,
	}, nil
}

// Predict calls the /predict endpoint with the extended feature set.
func (c *ModelClient) Predict(ctx context.Context, f Features) (*PredictResult, error) {
	var out PredictResult
	if err := c.post(ctx, "/predict", f, &out); err != nil {
		return nil, err
	}
	if out.Prediction != 0 && out.Prediction != 1 {
		return nil, fmt.Errorf("%w: prediction must be 0 or 1, got %d", ErrBadResponse, out.Prediction)
	}
	return &out, nil
}

func (c *ModelClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("model call failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("model returned error status")
		return fmt.Errorf("%w: status %d: %s", ErrBadResponse, resp.StatusCode, truncate(raw, 256))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	c.log.Debug().Str("path", path).Dur("took", time.Since(start)).Msg("model call ok")
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
