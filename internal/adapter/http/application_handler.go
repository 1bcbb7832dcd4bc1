package http

import (
	"net/http"
	"strconv"

	"peerlend-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct{ uc *application.Usecase }

func NewApplicationHandler(uc *application.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitApplicationReq struct {
	BorrowerID     string  `json:"borrower_id"     validate:"required,hex32"`
	Amount         float64 `json:"amount"          validate:"required,gt=0,dec2"`
	InterestRate   float64 `json:"interest_rate"   validate:"gte=0"`
	DurationMonths int     `json:"duration_months" validate:"required,gt=0"`
	Collateral     string  `json:"collateral"`
	Purpose        string  `json:"purpose"`
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

	dto, err := h.uc.Submit(c.Request().Context(), application.SubmitApplicationInput{
		BorrowerID:     req.BorrowerID,
		Amount:         req.Amount,
		InterestRate:   req.InterestRate,
		DurationMonths: req.DurationMonths,
		Collateral:     req.Collateral,
		Purpose:        req.Purpose,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) ListOpenApplications(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	list, err := h.uc.ListOpen(c.Request().Context(), limit)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"applications": list})
}
