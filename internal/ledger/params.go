package ledger

import "errors"

// Params groups the protocol limits for one ledger instance. They are plain
// values handed to New so independent ledgers can run side by side; only the
// interest rate may change afterwards, and only through SetInterestRate.
type Params struct {
	// InterestRateBps is the simple per-hour accrual rate in basis points.
	InterestRateBps uint64
	// MaxLTVBps caps principal relative to collateral valuation.
	MaxLTVBps uint64
	// MaxActiveLoans caps concurrently active records per borrower.
	MaxActiveLoans int
	// MaxDurationHours caps endTime - startTime.
	MaxDurationHours uint64
}

// DefaultParams mirrors the reference deployment: 5% rate, 70% LTV ceiling,
// five concurrent loans per borrower, 30-day maximum term.
func DefaultParams() Params {
	return Params{
		InterestRateBps:  500,
		MaxLTVBps:        7000,
		MaxActiveLoans:   5,
		MaxDurationHours: 720,
	}
}

func (p Params) Validate() error {
	if p.MaxLTVBps == 0 || p.MaxLTVBps > 10_000 {
		return errors.New("ledger: MaxLTVBps must be in (0, 10000]")
	}
	if p.MaxActiveLoans <= 0 {
		return errors.New("ledger: MaxActiveLoans must be positive")
	}
	if p.MaxDurationHours == 0 {
		return errors.New("ledger: MaxDurationHours must be positive")
	}
	return nil
}
