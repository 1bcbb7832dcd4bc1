package http

import (
	"net/http"

	"peerlend-backend/internal/usecase/negotiation"

	"github.com/labstack/echo/v4"
)

type OfferHandler struct{ uc *negotiation.Usecase }

func NewOfferHandler(uc *negotiation.Usecase) *OfferHandler { return &OfferHandler{uc: uc} }

type createOfferReq struct {
	InvestorID   string  `json:"investor_id"   validate:"required,hex32"`
	Amount       float64 `json:"amount"        validate:"required,gt=0,dec2"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0"`
	Message      string  `json:"message"`
}

type acceptOfferReq struct {
	BorrowerID    string `json:"borrower_id"    validate:"required,hex32"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	PaymentNumber string `json:"payment_number" validate:"required"`
}

type rejectOfferReq struct {
	BorrowerID string `json:"borrower_id" validate:"required,hex32"`
}

type disburseOfferReq struct {
	InvestorID string `json:"investor_id" validate:"required,hex32"`
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	applicationID := c.Param("application_id")
	if applicationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing application_id path param"})
	}
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.CreateOffer(c.Request().Context(), negotiation.CreateOfferInput{
		ApplicationID: applicationID,
		InvestorID:    req.InvestorID,
		Amount:        req.Amount,
		InterestRate:  req.InterestRate,
		Message:       req.Message,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *OfferHandler) ListOffers(c echo.Context) error {
	dto, err := h.uc.ListOffers(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OfferHandler) AcceptOffer(c echo.Context) error {
	offerID := c.Param("offer_id")
	if offerID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing offer_id path param"})
	}
	var req acceptOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.AcceptOffer(c.Request().Context(), negotiation.AcceptOfferInput{
		OfferID:       offerID,
		BorrowerID:    req.BorrowerID,
		PaymentMethod: req.PaymentMethod,
		PaymentNumber: req.PaymentNumber,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OfferHandler) RejectOffer(c echo.Context) error {
	offerID := c.Param("offer_id")
	if offerID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing offer_id path param"})
	}
	var req rejectOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.RejectOffer(c.Request().Context(), offerID, req.BorrowerID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *OfferHandler) DisburseOffer(c echo.Context) error {
	offerID := c.Param("offer_id")
	if offerID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing offer_id path param"})
	}
	var req disburseOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Disburse(c.Request().Context(), offerID, req.InvestorID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
