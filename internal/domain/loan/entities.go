package loan

import (
	"math/big"
	"time"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusRepaid     Status = "repaid"
	StatusLiquidated Status = "liquidated"
)

// Record is one lending transaction. Records are keyed by an identifier that
// starts at 1 and only grows; id 0 means "no such record". Amounts are fixed
// point integers in the currency's smallest unit.
type Record struct {
	ID              uint64
	Borrower        string
	CollateralClass string
	CollateralID    uint64
	Principal       *big.Int
	StartTime       time.Time
	EndTime         time.Time
	Status          Status
}

// Clone returns a deep copy so callers can't mutate ledger-owned state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	if r.Principal != nil {
		out.Principal = new(big.Int).Set(r.Principal)
	}
	return &out
}

// Terminal reports whether the record can never change again.
func (r *Record) Terminal() bool {
	return r.Status == StatusRepaid || r.Status == StatusLiquidated
}
