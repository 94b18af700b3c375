// Package memnft is an in-memory non-fungible registry with per-unit
// approvals and safe-transfer acceptance callbacks, standing in for the
// external collateral registry during local deployments and tests.
package memnft

import (
	"errors"
	"sync"

	"github.com/luisvid/nft-lending-protocol/internal/domain/asset"
)

var (
	ErrUnknownUnit  = errors.New("memnft: unknown unit")
	ErrNotUnitOwner = errors.New("memnft: from is not the unit owner")
	ErrRejected     = errors.New("memnft: recipient rejected the unit")
)

type Registry struct {
	mu        sync.Mutex
	owners    map[uint64]string
	approvals map[uint64]string
	receivers map[string]asset.CollateralReceiver
}

func New() *Registry {
	return &Registry{
		owners:    make(map[uint64]string),
		approvals: make(map[uint64]string),
		receivers: make(map[string]asset.CollateralReceiver),
	}
}

// Mint registers a new unit under the given owner. Test and bootstrap only.
func (r *Registry) Mint(owner string, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[id] = owner
}

// RegisterReceiver installs the acceptance callback for an account. Transfers
// addressed to accounts without one are delivered unconditionally.
func (r *Registry) RegisterReceiver(account string, recv asset.CollateralReceiver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receivers[account] = recv
}

func (r *Registry) OwnerOf(id uint64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.owners[id]
	if !ok {
		return "", ErrUnknownUnit
	}
	return owner, nil
}

func (r *Registry) GetApproved(id uint64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[id]; !ok {
		return "", ErrUnknownUnit
	}
	return r.approvals[id], nil
}

// Approve grants a single account the right to be the destination of the next
// transfer of the unit. Cleared on transfer.
func (r *Registry) Approve(owner, approved string, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.owners[id]
	if !ok {
		return ErrUnknownUnit
	}
	if cur != owner {
		return ErrNotUnitOwner
	}
	r.approvals[id] = approved
	return nil
}

func (r *Registry) SafeTransferFrom(from, to string, id uint64) error {
	r.mu.Lock()
	cur, ok := r.owners[id]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownUnit
	}
	if cur != from {
		r.mu.Unlock()
		return ErrNotUnitOwner
	}
	recv := r.receivers[to]
	r.mu.Unlock()

	// Acceptance check runs outside the lock: the receiver may call back into
	// the registry.
	if recv != nil {
		if err := recv.OnCollateralReceived(from, from, id); err != nil {
			return ErrRejected
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.owners[id] != from {
		return ErrNotUnitOwner
	}
	r.owners[id] = to
	delete(r.approvals, id)
	return nil
}
