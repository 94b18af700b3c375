// Package ledger implements the loan-lifecycle engine: it owns the record
// mapping, enforces the collateral and debt invariants, and drives each
// loan's Active -> Repaid | Liquidated state machine. All mutation is
// serialized behind one mutex and every public operation is all-or-nothing:
// record state is written only after every external transfer has succeeded,
// and transfers already executed are compensated when a later one fails.
package ledger

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"sync"
	"time"

	"github.com/luisvid/nft-lending-protocol/internal/domain/asset"
	"github.com/luisvid/nft-lending-protocol/internal/domain/loan"
)

// Engine is the collateralized-lending ledger. The custody account holds the
// currency pool and all pledged collateral units; the owner account is the
// only identity allowed to retune the interest rate and is the liquidity
// provider for liquidation buyouts.
type Engine struct {
	mu sync.Mutex

	owner   string
	custody string
	params  Params

	token      asset.FungibleToken
	registries map[string]asset.CollateralRegistry
	oracle     asset.PriceOracle
	events     loan.EventStore
	now        func() time.Time

	loans  map[uint64]*loan.Record
	active map[string]int
	nextID uint64
}

// New constructs an engine for the given owner and custody accounts. The
// collaborators are wired afterwards through the Set/Register methods, before
// the first operation.
func New(owner, custody string, params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if owner == "" || custody == "" {
		return nil, fmt.Errorf("ledger: owner and custody accounts are required")
	}
	return &Engine{
		owner:      owner,
		custody:    custody,
		params:     params,
		registries: make(map[string]asset.CollateralRegistry),
		now:        time.Now,
		loans:      make(map[uint64]*loan.Record),
		active:     make(map[string]int),
		nextID:     1,
	}, nil
}

// SetToken wires the loan-currency ledger.
func (e *Engine) SetToken(t asset.FungibleToken) { e.token = t }

// SetOracle wires the valuation source.
func (e *Engine) SetOracle(o asset.PriceOracle) { e.oracle = o }

// SetEventStore wires the append-only audit log.
func (e *Engine) SetEventStore(s loan.EventStore) { e.events = s }

// SetClock overrides the time source; tests use it to cross the due date.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// RegisterCollateralClass binds a class name to its registry. Units from
// unregistered classes cannot be pledged.
func (e *Engine) RegisterCollateralClass(class string, r asset.CollateralRegistry) {
	e.registries[class] = r
}

// Owner returns the ledger owner account.
func (e *Engine) Owner() string { return e.owner }

// Custody returns the account holding pooled funds and pledged collateral.
func (e *Engine) Custody() string { return e.custody }

// MaxDurationHours exposes the protocol-wide term cap.
func (e *Engine) MaxDurationHours() uint64 { return e.params.MaxDurationHours }

// InterestRateBps returns the current accrual rate.
func (e *Engine) InterestRateBps() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params.InterestRateBps
}

// SetInterestRate adjusts the accrual rate. Owner only.
func (e *Engine) SetInterestRate(caller string, bps uint64) error {
	if caller != e.owner {
		return loan.ErrNotOwner
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params.InterestRateBps = bps
	return nil
}

// OnCollateralReceived accepts units addressed to the custody account so
// registries with safe-transfer semantics will release collateral to us.
func (e *Engine) OnCollateralReceived(operator, from string, id uint64) error {
	return nil
}

// Originate opens a loan: it validates the request, pulls the collateral unit
// into custody, disburses the principal, and records the new Active record.
// Preconditions are checked in a fixed order, each with its own error, before
// anything moves.
func (e *Engine) Originate(ctx context.Context, borrower, class string, collateralID uint64, principal *big.Int, durationHours uint64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active[borrower] >= e.params.MaxActiveLoans {
		return 0, loan.ErrActiveLoanLimit
	}
	registry, ok := e.registries[class]
	if !ok {
		return 0, loan.ErrUnknownClass
	}
	holder, err := registry.OwnerOf(collateralID)
	if err != nil || holder != borrower {
		return 0, loan.ErrNotCollateralOwner
	}
	if principal == nil || principal.Sign() <= 0 {
		return 0, loan.ErrInvalidPrincipal
	}
	pool, err := e.token.BalanceOf(e.custody)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", loan.ErrTransferFailed, err)
	}
	if pool.Cmp(principal) < 0 {
		return 0, loan.ErrInsufficientLiquidity
	}
	approved, err := registry.GetApproved(collateralID)
	if err != nil || approved != e.custody {
		return 0, loan.ErrCollateralNotApproved
	}
	if durationHours > e.params.MaxDurationHours {
		return 0, loan.ErrDurationTooLong
	}
	price, err := e.oracle.UnitPrice(class)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", loan.ErrTransferFailed, err)
	}
	ceiling := new(big.Int).Mul(price, new(big.Int).SetUint64(e.params.MaxLTVBps))
	ceiling.Quo(ceiling, basisPoints) // integer truncation, not rounding
	if principal.Cmp(ceiling) > 0 {
		return 0, loan.ErrLTVExceeded
	}

	// Custody first, then disbursement; undo the pull if disbursement fails.
	if err := registry.SafeTransferFrom(borrower, e.custody, collateralID); err != nil {
		return 0, fmt.Errorf("%w: pull collateral: %v", loan.ErrTransferFailed, err)
	}
	if err := e.token.Transfer(e.custody, borrower, principal); err != nil {
		if undo := registry.SafeTransferFrom(e.custody, borrower, collateralID); undo != nil {
			log.Printf("ledger: collateral return after failed disbursement: %v", undo)
		}
		return 0, fmt.Errorf("%w: disburse principal: %v", loan.ErrTransferFailed, err)
	}

	now := e.now().UTC()
	rec := &loan.Record{
		ID:              e.nextID,
		Borrower:        borrower,
		CollateralClass: class,
		CollateralID:    collateralID,
		Principal:       new(big.Int).Set(principal),
		StartTime:       now,
		EndTime:         now.Add(time.Duration(durationHours) * time.Hour),
		Status:          loan.StatusActive,
	}
	e.loans[rec.ID] = rec
	e.active[borrower]++
	e.nextID++

	e.emit(ctx, &loan.Event{
		LoanID:        rec.ID,
		Kind:          loan.EventOriginated,
		Borrower:      borrower,
		Principal:     principal.String(),
		DurationHours: durationHours,
	})
	return rec.ID, nil
}

// Repay settles an active, not-yet-due loan. Only the original borrower may
// repay, and only with at least the full amount owed; the collateral unit is
// released back once the payment has cleared.
func (e *Engine) Repay(ctx context.Context, caller string, loanID uint64, amount *big.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.record(loanID)
	if err != nil {
		return err
	}
	if rec.Status != loan.StatusActive {
		return loan.ErrNotActive
	}
	now := e.now().UTC()
	if now.After(rec.EndTime) {
		return loan.ErrPastDue
	}
	if caller != rec.Borrower {
		return loan.ErrNotBorrower
	}
	owed := totalOwed(rec, e.params.InterestRateBps, now)
	if amount == nil || amount.Cmp(owed) < 0 {
		return loan.ErrInsufficientPayment
	}

	if err := e.token.TransferFrom(e.custody, caller, e.custody, amount); err != nil {
		return fmt.Errorf("%w: collect payment: %v", loan.ErrTransferFailed, err)
	}
	registry := e.registries[rec.CollateralClass]
	if err := registry.SafeTransferFrom(e.custody, rec.Borrower, rec.CollateralID); err != nil {
		if undo := e.token.Transfer(e.custody, caller, amount); undo != nil {
			log.Printf("ledger: payment return after failed collateral release: %v", undo)
		}
		return fmt.Errorf("%w: release collateral: %v", loan.ErrTransferFailed, err)
	}

	rec.Status = loan.StatusRepaid
	e.decActive(rec.Borrower)

	e.emit(ctx, &loan.Event{
		LoanID:     rec.ID,
		Kind:       loan.EventRepaid,
		Borrower:   rec.Borrower,
		AmountPaid: amount.String(),
	})
	return nil
}

// Liquidate closes a loan strictly past its due date. Anyone may trigger it;
// the buyout is funded from the owner's balance at the oracle's current unit
// price, the collateral moves to the owner, and any surplus over the amount
// owed is refunded to the borrower.
func (e *Engine) Liquidate(ctx context.Context, loanID uint64) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.record(loanID)
	if err != nil {
		return nil, err
	}
	if rec.Status != loan.StatusActive {
		return nil, loan.ErrNotActive
	}
	now := e.now().UTC()
	if !now.After(rec.EndTime) {
		return nil, loan.ErrNotExpired
	}

	price, err := e.oracle.UnitPrice(rec.CollateralClass)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", loan.ErrTransferFailed, err)
	}

	if err := e.token.TransferFrom(e.custody, e.owner, e.custody, price); err != nil {
		return nil, fmt.Errorf("%w: collect buyout from owner: %v", loan.ErrTransferFailed, err)
	}
	registry := e.registries[rec.CollateralClass]
	if err := registry.SafeTransferFrom(e.custody, e.owner, rec.CollateralID); err != nil {
		if undo := e.token.Transfer(e.custody, e.owner, price); undo != nil {
			log.Printf("ledger: buyout return after failed collateral handoff: %v", undo)
		}
		return nil, fmt.Errorf("%w: transfer collateral to owner: %v", loan.ErrTransferFailed, err)
	}

	owed := totalOwed(rec, e.params.InterestRateBps, now)
	refund := new(big.Int).Sub(price, owed)
	if refund.Sign() < 0 {
		refund.SetInt64(0)
	}
	if refund.Sign() > 0 {
		if err := e.token.Transfer(e.custody, rec.Borrower, refund); err != nil {
			if undo := registry.SafeTransferFrom(e.owner, e.custody, rec.CollateralID); undo != nil {
				log.Printf("ledger: collateral reclaim after failed refund: %v", undo)
			}
			if undo := e.token.Transfer(e.custody, e.owner, price); undo != nil {
				log.Printf("ledger: buyout return after failed refund: %v", undo)
			}
			return nil, fmt.Errorf("%w: refund surplus: %v", loan.ErrTransferFailed, err)
		}
	}

	rec.Status = loan.StatusLiquidated
	e.decActive(rec.Borrower)

	e.emit(ctx, &loan.Event{
		LoanID:    rec.ID,
		Kind:      loan.EventLiquidated,
		Borrower:  rec.Borrower,
		UnitPrice: price.String(),
		TotalOwed: owed.String(),
		Refund:    refund.String(),
	})
	return refund, nil
}

// Record returns a copy of the stored record.
func (e *Engine) Record(loanID uint64) (*loan.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, err := e.record(loanID)
	if err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// Status reports the record's current state.
func (e *Engine) Status(loanID uint64) (loan.Status, error) {
	rec, err := e.Record(loanID)
	if err != nil {
		return "", err
	}
	return rec.Status, nil
}

// InterestDue returns the interest accrued so far, capped at the full term.
func (e *Engine) InterestDue(loanID uint64) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, err := e.record(loanID)
	if err != nil {
		return nil, err
	}
	return accruedInterest(rec.Principal, e.params.InterestRateBps, elapsedSeconds(rec, e.now().UTC())), nil
}

// TotalOwed returns principal plus accrued interest as of now.
func (e *Engine) TotalOwed(loanID uint64) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, err := e.record(loanID)
	if err != nil {
		return nil, err
	}
	return totalOwed(rec, e.params.InterestRateBps, e.now().UTC()), nil
}

// Elapsed returns the accrual window consumed so far, in seconds.
func (e *Engine) Elapsed(loanID uint64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec, err := e.record(loanID)
	if err != nil {
		return 0, err
	}
	return elapsedSeconds(rec, e.now().UTC()), nil
}

// ActiveLoans reports the borrower's count of concurrently active records.
func (e *Engine) ActiveLoans(borrower string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active[borrower]
}

func (e *Engine) record(loanID uint64) (*loan.Record, error) {
	if loanID == 0 || loanID >= e.nextID {
		return nil, loan.ErrInvalidLoanID
	}
	rec, ok := e.loans[loanID]
	if !ok {
		return nil, loan.ErrInvalidLoanID
	}
	return rec, nil
}

func (e *Engine) decActive(borrower string) {
	if e.active[borrower] > 0 {
		e.active[borrower]--
	}
	if e.active[borrower] == 0 {
		delete(e.active, borrower)
	}
}

// emit appends to the audit log after the operation has committed; a failing
// store must not unwind a settled transfer, so errors are only logged.
func (e *Engine) emit(ctx context.Context, ev *loan.Event) {
	if e.events == nil {
		return
	}
	if err := e.events.Append(ctx, ev); err != nil {
		log.Printf("ledger: append %s event for loan %d: %v", ev.Kind, ev.LoanID, err)
	}
}
