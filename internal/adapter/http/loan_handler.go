package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	uc "github.com/luisvid/nft-lending-protocol/internal/usecase/loan"
)

type LoanHandler struct{ uc *uc.Usecase }

func NewLoanHandler(u *uc.Usecase) *LoanHandler { return &LoanHandler{uc: u} }

type originateReq struct {
	CollateralClass string `json:"collateral_class" validate:"required"`
	CollateralID    uint64 `json:"collateral_id" validate:"required"`
	Principal       string `json:"principal" validate:"required,amount"`
	DurationHours   uint64 `json:"duration_hours" validate:"required"`
}

type repayReq struct {
	Amount string `json:"amount" validate:"required,amount"`
}

type setRateReq struct {
	RateBps uint64 `json:"rate_bps" validate:"lte=10000"`
}

func (h *LoanHandler) Originate(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req originateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Originate(c.Request().Context(), caller, uc.OriginateInput{
		CollateralClass: req.CollateralClass,
		CollateralID:    req.CollateralID,
		Principal:       req.Principal,
		DurationHours:   req.DurationHours,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Repay(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	loanID, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Repay(c.Request().Context(), caller, loanID, req.Amount)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Liquidate(c echo.Context) error {
	if _, ok := callerID(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	loanID, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	dto, err := h.uc.Liquidate(c.Request().Context(), loanID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	loanID, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	dto, err := h.uc.Get(loanID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Events(c echo.Context) error {
	loanID, ok := loanIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	events, err := h.uc.Events(c.Request().Context(), loanID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

func (h *LoanHandler) SetRate(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid Ax-Caller-Id"})
	}
	var req setRateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	if err := h.uc.SetInterestRate(caller, req.RateBps); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]uint64{"rate_bps": req.RateBps})
}

func loanIDParam(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("loan_id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
