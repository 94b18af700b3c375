// Package memtoken is an in-memory fungible-asset ledger with standard
// balance / allowance semantics. It backs the lending pool in local
// deployments and tests; a production deployment swaps in a real currency
// ledger behind the same interface.
package memtoken

import (
	"errors"
	"math/big"
	"sync"
)

var (
	ErrInsufficientBalance   = errors.New("memtoken: insufficient balance")
	ErrInsufficientAllowance = errors.New("memtoken: insufficient allowance")
	ErrInvalidAmount         = errors.New("memtoken: amount must be positive")
)

type Token struct {
	mu         sync.Mutex
	balances   map[string]*big.Int
	allowances map[string]map[string]*big.Int // owner -> spender -> remaining
}

func New() *Token {
	return &Token{
		balances:   make(map[string]*big.Int),
		allowances: make(map[string]map[string]*big.Int),
	}
}

// Mint credits freshly created funds to an account. Test and bootstrap only.
func (t *Token) Mint(account string, amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[account] = new(big.Int).Add(t.balance(account), amount)
}

func (t *Token) Transfer(from, to string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.move(from, to, amount)
}

func (t *Token) TransferFrom(spender, from, to string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if spender != from {
		remaining := t.allowance(from, spender)
		if remaining.Cmp(amount) < 0 {
			return ErrInsufficientAllowance
		}
		if err := t.move(from, to, amount); err != nil {
			return err
		}
		t.allowances[from][spender] = new(big.Int).Sub(remaining, amount)
		return nil
	}
	return t.move(from, to, amount)
}

func (t *Token) BalanceOf(account string) (*big.Int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return new(big.Int).Set(t.balance(account)), nil
}

func (t *Token) Approve(owner, spender string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.allowances[owner] == nil {
		t.allowances[owner] = make(map[string]*big.Int)
	}
	t.allowances[owner][spender] = new(big.Int).Set(amount)
	return nil
}

// Allowance returns the remaining spend granted by owner to spender.
func (t *Token) Allowance(owner, spender string) *big.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return new(big.Int).Set(t.allowance(owner, spender))
}

func (t *Token) balance(account string) *big.Int {
	if b := t.balances[account]; b != nil {
		return b
	}
	return big.NewInt(0)
}

func (t *Token) allowance(owner, spender string) *big.Int {
	if m := t.allowances[owner]; m != nil {
		if a := m[spender]; a != nil {
			return a
		}
	}
	return big.NewInt(0)
}

func (t *Token) move(from, to string, amount *big.Int) error {
	src := t.balance(from)
	if src.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	t.balances[from] = new(big.Int).Sub(src, amount)
	t.balances[to] = new(big.Int).Add(t.balance(to), amount)
	return nil
}
