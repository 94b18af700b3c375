package loan

import (
	"context"
	"errors"
	"math/big"

	domain "github.com/luisvid/nft-lending-protocol/internal/domain/loan"
	"github.com/luisvid/nft-lending-protocol/internal/ledger"
)

// ErrInvalidAmount flags a principal or payment that is not a positive
// decimal integer string.
var ErrInvalidAmount = errors.New("invalid amount")

type Usecase struct {
	eng    *ledger.Engine
	events domain.EventStore
}

func NewUsecase(eng *ledger.Engine, events domain.EventStore) *Usecase {
	return &Usecase{eng: eng, events: events}
}

func (u *Usecase) Originate(ctx context.Context, caller string, in OriginateInput) (*LoanDTO, error) {
	principal, err := parseAmount(in.Principal)
	if err != nil {
		return nil, err
	}
	id, err := u.eng.Originate(ctx, caller, in.CollateralClass, in.CollateralID, principal, in.DurationHours)
	if err != nil {
		return nil, err
	}
	return u.Get(id)
}

func (u *Usecase) Repay(ctx context.Context, caller string, loanID uint64, amount string) (*LoanDTO, error) {
	tendered, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	if err := u.eng.Repay(ctx, caller, loanID, tendered); err != nil {
		return nil, err
	}
	return u.Get(loanID)
}

func (u *Usecase) Liquidate(ctx context.Context, loanID uint64) (*LiquidationDTO, error) {
	refund, err := u.eng.Liquidate(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return &LiquidationDTO{LoanID: loanID, Refund: refund.String()}, nil
}

func (u *Usecase) Get(loanID uint64) (*LoanDTO, error) {
	rec, err := u.eng.Record(loanID)
	if err != nil {
		return nil, err
	}
	interest, err := u.eng.InterestDue(loanID)
	if err != nil {
		return nil, err
	}
	owed, err := u.eng.TotalOwed(loanID)
	if err != nil {
		return nil, err
	}
	elapsed, err := u.eng.Elapsed(loanID)
	if err != nil {
		return nil, err
	}
	return &LoanDTO{
		LoanID:          rec.ID,
		Borrower:        rec.Borrower,
		CollateralClass: rec.CollateralClass,
		CollateralID:    rec.CollateralID,
		Principal:       rec.Principal.String(),
		Status:          string(rec.Status),
		StartTime:       rec.StartTime,
		EndTime:         rec.EndTime,
		InterestDue:     interest.String(),
		TotalOwed:       owed.String(),
		ElapsedSeconds:  elapsed,
	}, nil
}

func (u *Usecase) Events(ctx context.Context, loanID uint64) ([]domain.Event, error) {
	// Validate the id through the ledger so unknown loans 404 the same way.
	if _, err := u.eng.Record(loanID); err != nil {
		return nil, err
	}
	return u.events.ListByLoanID(ctx, loanID)
}

func (u *Usecase) SetInterestRate(caller string, bps uint64) error {
	return u.eng.SetInterestRate(caller, bps)
}

func parseAmount(raw string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	return v, nil
}
