package loan

import "time"

type OriginateInput struct {
	CollateralClass string `json:"collateral_class"`
	CollateralID    uint64 `json:"collateral_id"`
	Principal       string `json:"principal"`
	DurationHours   uint64 `json:"duration_hours"`
}

type LoanDTO struct {
	LoanID          uint64    `json:"loan_id"`
	Borrower        string    `json:"borrower"`
	CollateralClass string    `json:"collateral_class"`
	CollateralID    uint64    `json:"collateral_id"`
	Principal       string    `json:"principal"`
	Status          string    `json:"status"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	InterestDue     string    `json:"interest_due"`
	TotalOwed       string    `json:"total_owed"`
	ElapsedSeconds  uint64    `json:"elapsed_seconds"`
}

type LiquidationDTO struct {
	LoanID uint64 `json:"loan_id"`
	Refund string `json:"refund"`
}
