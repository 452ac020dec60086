package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	appDomain "credit-risk-engine/internal/domain/application"
	predDomain "credit-risk-engine/internal/domain/prediction"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// domainError maps engine failures onto HTTP statuses. The five failure kinds
// stay distinguishable: validation 400, not-found 404, id conflict 409,
// scoring 502, anything else 500.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appDomain.ErrValidation), errors.Is(err, appDomain.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appDomain.ErrNotFound), errors.Is(err, predDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appDomain.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appDomain.ErrScoring):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
