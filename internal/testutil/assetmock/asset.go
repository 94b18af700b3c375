// Package assetmock holds function-backed stand-ins for the custody and
// valuation contracts. Tests override only the calls they care about; engine
// failure-path tests use them to make a single transfer fail mid-operation.
package assetmock

import (
	"errors"
	"math/big"
)

var errNotConfigured = errors.New("assetmock: call not configured")

type Token struct {
	TransferFn     func(from, to string, amount *big.Int) error
	TransferFromFn func(spender, from, to string, amount *big.Int) error
	BalanceOfFn    func(account string) (*big.Int, error)
	ApproveFn      func(owner, spender string, amount *big.Int) error
}

func (t *Token) Transfer(from, to string, amount *big.Int) error {
	if t.TransferFn != nil {
		return t.TransferFn(from, to, amount)
	}
	return nil
}

func (t *Token) TransferFrom(spender, from, to string, amount *big.Int) error {
	if t.TransferFromFn != nil {
		return t.TransferFromFn(spender, from, to, amount)
	}
	return nil
}

func (t *Token) BalanceOf(account string) (*big.Int, error) {
	if t.BalanceOfFn != nil {
		return t.BalanceOfFn(account)
	}
	return nil, errNotConfigured
}

func (t *Token) Approve(owner, spender string, amount *big.Int) error {
	if t.ApproveFn != nil {
		return t.ApproveFn(owner, spender, amount)
	}
	return nil
}

type Registry struct {
	OwnerOfFn          func(id uint64) (string, error)
	GetApprovedFn      func(id uint64) (string, error)
	SafeTransferFromFn func(from, to string, id uint64) error
}

func (r *Registry) OwnerOf(id uint64) (string, error) {
	if r.OwnerOfFn != nil {
		return r.OwnerOfFn(id)
	}
	return "", errNotConfigured
}

func (r *Registry) GetApproved(id uint64) (string, error) {
	if r.GetApprovedFn != nil {
		return r.GetApprovedFn(id)
	}
	return "", errNotConfigured
}

func (r *Registry) SafeTransferFrom(from, to string, id uint64) error {
	if r.SafeTransferFromFn != nil {
		return r.SafeTransferFromFn(from, to, id)
	}
	return nil
}

type Oracle struct {
	UnitPriceFn func(class string) (*big.Int, error)
}

func (o *Oracle) UnitPrice(class string) (*big.Int, error) {
	if o.UnitPriceFn != nil {
		return o.UnitPriceFn(class)
	}
	return nil, errNotConfigured
}
