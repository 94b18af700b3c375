// Package asset declares the external custody and valuation contracts the
// ledger depends on. Accounts are 32-char lowercase hex ids; amounts are
// big integers in the currency's smallest unit. Every call is a trust
// boundary: a non-nil error means the operation did not happen.
package asset

import "math/big"

// FungibleToken is the loan-currency ledger.
type FungibleToken interface {
	// Transfer moves the caller's own funds; from must be the account the
	// caller controls.
	Transfer(from, to string, amount *big.Int) error
	// TransferFrom moves funds out of from on behalf of spender, consuming
	// allowance previously granted via Approve.
	TransferFrom(spender, from, to string, amount *big.Int) error
	BalanceOf(account string) (*big.Int, error)
	Approve(owner, spender string, amount *big.Int) error
}

// CollateralRegistry tracks ownership of non-fungible collateral units.
type CollateralRegistry interface {
	OwnerOf(id uint64) (string, error)
	GetApproved(id uint64) (string, error)
	// SafeTransferFrom moves a unit and invokes the recipient's acceptance
	// callback when one is registered; a rejected callback fails the transfer.
	SafeTransferFrom(from, to string, id uint64) error
}

// CollateralReceiver is the acceptance callback a custodian implements so a
// registry will release units into its account.
type CollateralReceiver interface {
	OnCollateralReceived(operator, from string, id uint64) error
}

// PriceOracle supplies the point-in-time unit price of a collateral class.
// Reads must not be cached across ledger operations.
type PriceOracle interface {
	UnitPrice(class string) (*big.Int, error)
}
