package loan

import "errors"

// Every failing precondition surfaces as its own sentinel so callers can
// branch with errors.Is instead of matching message text.

// Authorization.
var (
	ErrNotBorrower = errors.New("loan: caller is not the record's borrower")
	ErrNotOwner    = errors.New("loan: caller is not the ledger owner")
)

// Validation.
var (
	ErrInvalidLoanID   = errors.New("loan: no record for identifier")
	ErrInvalidPrincipal = errors.New("loan: principal must be positive")
	ErrDurationTooLong = errors.New("loan: duration exceeds maximum")
	ErrLTVExceeded     = errors.New("loan: principal exceeds loan-to-value ceiling")
	ErrActiveLoanLimit = errors.New("loan: borrower active-loan limit reached")
	ErrUnknownClass    = errors.New("loan: collateral class not registered")
)

// State.
var (
	ErrNotActive  = errors.New("loan: record is not active")
	ErrPastDue    = errors.New("loan: past due, repayment window closed")
	ErrNotExpired = errors.New("loan: not yet past due")
)

// Resource.
var (
	ErrInsufficientLiquidity = errors.New("loan: ledger funds below requested principal")
	ErrInsufficientPayment   = errors.New("loan: tendered amount below total owed")
	ErrCollateralNotApproved = errors.New("loan: collateral transfer not approved to ledger")
	ErrNotCollateralOwner    = errors.New("loan: borrower does not hold the collateral unit")
	ErrTransferFailed        = errors.New("loan: asset transfer failed")
)
