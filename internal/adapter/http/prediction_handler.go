package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	predUsecase "credit-risk-engine/internal/usecase/prediction"
)

type PredictionHandler struct{ uc *predUsecase.Usecase }

func NewPredictionHandler(uc *predUsecase.Usecase) *PredictionHandler {
	return &PredictionHandler{uc: uc}
}

type assessReq struct {
	Age                int     `json:"age"                 validate:"gte=18,lte=100"`
	Income             float64 `json:"income"              validate:"gte=0"`
	LoanAmount         float64 `json:"loan_amount"         validate:"gt=0"`
	InterestRate       float64 `json:"interest_rate"       validate:"gte=0,lte=1"`
	Turnover           float64 `json:"turnover"            validate:"gte=0"`
	CustomerTenure     int     `json:"customer_tenure"     validate:"gte=0"`
	NumLatePayments    int     `json:"num_late_payments"   validate:"gte=0"`
	UnpaidAmount       float64 `json:"unpaid_amount"       validate:"gte=0"`
	IndustrySector     string  `json:"industry_sector"     validate:"required"`
	CreditType         string  `json:"credit_type"         validate:"required"`
	HasGuarantee       bool    `json:"has_guarantee"`
	GuaranteeType      string  `json:"guarantee_type"`
	RepaymentFrequency string  `json:"repayment_frequency" validate:"required"`
}

func (h *PredictionHandler) Assess(c echo.Context) error {
	var req assessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Assess(c.Request().Context(), predUsecase.AssessInput(req))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PredictionHandler) ListPredictions(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
		}
		limit = n
	}
	dtos, err := h.uc.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *PredictionHandler) GetPrediction(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("prediction_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PredictionHandler) DeletePrediction(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("prediction_id")); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PredictionHandler) ClearPredictions(c echo.Context) error {
	if err := h.uc.Clear(c.Request().Context()); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
