package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"credit-risk-engine/internal/usecase/analytics"
)

type AnalyticsHandler struct{ uc *analytics.Usecase }

func NewAnalyticsHandler(uc *analytics.Usecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) DashboardStats(c echo.Context) error {
	stats, err := h.uc.DashboardStats(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AnalyticsHandler) Analysis(c echo.Context) error {
	analysis, err := h.uc.Analysis(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, analysis)
}

func (h *AnalyticsHandler) PredictionStats(c echo.Context) error {
	stats, err := h.uc.PredictionStats(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
