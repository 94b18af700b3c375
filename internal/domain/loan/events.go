package loan

import (
	"context"
	"time"
)

type EventKind string

const (
	EventOriginated EventKind = "originated"
	EventRepaid     EventKind = "repaid"
	EventLiquidated EventKind = "liquidated"
)

// Event is one append-only audit row. Amount columns hold decimal strings so
// the store never loses precision on big integers.
type Event struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanID        uint64    `gorm:"index:idx_loan_events_loan_id" json:"loan_id"`
	Kind          EventKind `gorm:"size:16" json:"kind"`
	Borrower      string    `gorm:"size:32" json:"borrower,omitempty"`
	Principal     string    `gorm:"size:64" json:"principal,omitempty"`
	DurationHours uint64    `json:"duration_hours,omitempty"`
	AmountPaid    string    `gorm:"size:64" json:"amount_paid,omitempty"`
	UnitPrice     string    `gorm:"size:64" json:"unit_price,omitempty"`
	TotalOwed     string    `gorm:"size:64" json:"total_owed,omitempty"`
	Refund        string    `gorm:"size:64" json:"refund,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Event) TableName() string { return "loan_events" }

// EventStore is the append-only log the ledger emits into. The ledger never
// reads it back; listing exists for audit endpoints only.
type EventStore interface {
	Append(ctx context.Context, e *Event) error
	ListByLoanID(ctx context.Context, loanID uint64) ([]Event, error)
}
