package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	domain "github.com/luisvid/nft-lending-protocol/internal/domain/loan"
	uc "github.com/luisvid/nft-lending-protocol/internal/usecase/loan"
)

// callerID extracts the authenticated account from the Ax-Caller-Id header.
// Transport-level identity only; record-level authorization stays in the
// ledger.
func callerID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get("Ax-Caller-Id"))
	if !reHex32.MatchString(id) {
		return "", false
	}
	return id, true
}

// statusFor maps the ledger's error taxonomy onto HTTP statuses: not-found,
// authorization, validation, state, resource, in that order.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidLoanID):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotBorrower),
		errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidPrincipal),
		errors.Is(err, domain.ErrDurationTooLong),
		errors.Is(err, domain.ErrLTVExceeded),
		errors.Is(err, domain.ErrActiveLoanLimit),
		errors.Is(err, domain.ErrUnknownClass),
		errors.Is(err, uc.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotActive),
		errors.Is(err, domain.ErrPastDue),
		errors.Is(err, domain.ErrNotExpired):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientLiquidity),
		errors.Is(err, domain.ErrInsufficientPayment),
		errors.Is(err, domain.ErrCollateralNotApproved),
		errors.Is(err, domain.ErrNotCollateralOwner),
		errors.Is(err, domain.ErrTransferFailed):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func jsonError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
