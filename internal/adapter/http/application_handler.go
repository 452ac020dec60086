package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	appDomain "credit-risk-engine/internal/domain/application"
	appUsecase "credit-risk-engine/internal/usecase/application"
)

type ApplicationHandler struct{ uc *appUsecase.Usecase }

func NewApplicationHandler(uc *appUsecase.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitApplicationReq struct {
	FirstName        string  `json:"first_name"        validate:"required"`
	LastName         string  `json:"last_name"         validate:"required"`
	Email            string  `json:"email"             validate:"required,email"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	EmploymentStatus string  `json:"employment_status" validate:"required"`
	AnnualIncome     float64 `json:"annual_income"     validate:"gte=0,dec2"`
	LoanAmount       float64 `json:"loan_amount"       validate:"gt=0,dec2"`
	InterestRate     float64 `json:"interest_rate"     validate:"gte=0,lte=1"`
	Turnover         float64 `json:"turnover"          validate:"gte=0,dec2"`
	LoanPurpose      string  `json:"loan_purpose"`
	CreditHistory    string  `json:"credit_history"    validate:"required"`
	AdditionalNotes  string  `json:"additional_notes"`
}

func (h *ApplicationHandler) SubmitApplication(c echo.Context) error {
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), appUsecase.SubmitInput(req))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) ListApplications(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	applicationID := c.Param("application_id")
	dto, err := h.uc.Get(c.Request().Context(), applicationID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateStatusReq struct {
	Status string `json:"status" validate:"required,appstatus"`
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	applicationID := c.Param("application_id")
	if applicationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing application_id path param"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), applicationID, appDomain.Status(req.Status))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
