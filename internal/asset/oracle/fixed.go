// Package oracle provides the fixed-price valuation stub. A production feed
// with staleness and manipulation safeguards plugs in behind the same
// interface; the ledger treats every read as point-in-time either way.
package oracle

import (
	"errors"
	"math/big"
	"sync"
)

var ErrNoPrice = errors.New("oracle: no price for collateral class")

// Fixed serves per-class prices set at construction (or later via SetPrice,
// which tests use to move the market).
type Fixed struct {
	mu     sync.Mutex
	prices map[string]*big.Int
}

func NewFixed() *Fixed {
	return &Fixed{prices: make(map[string]*big.Int)}
}

func (f *Fixed) SetPrice(class string, price *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[class] = new(big.Int).Set(price)
}

func (f *Fixed) UnitPrice(class string) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prices[class]
	if !ok {
		return nil, ErrNoPrice
	}
	return new(big.Int).Set(p), nil
}
