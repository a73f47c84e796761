package memory

import (
	"context"
	"sync"

	domainerrors "warden/contexts/governance/compensation-workflow/domain/errors"
)

// DefaultReserveBalance seeds local wiring with a working reserve.
const DefaultReserveBalance = 1_000_000

// Vault is the in-memory reserve stand-in. Release and refund are atomic
// under one lock, which is what the workflow's no-partial-effects contract
// relies on.
type Vault struct {
	mu      sync.Mutex
	balance uint64
	paid    map[string]uint64
}

// NewVault builds a vault with the given starting balance.
func NewVault(balance uint64) *Vault {
	return &Vault{
		balance: balance,
		paid:    make(map[string]uint64),
	}
}

func (v *Vault) ReleaseFunds(_ context.Context, recipient string, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if amount > v.balance {
		return domainerrors.ErrInsufficientReserve
	}
	v.balance -= amount
	v.paid[recipient] += amount
	return nil
}

func (v *Vault) Refund(_ context.Context, recipient string, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balance += amount
	if amount >= v.paid[recipient] {
		delete(v.paid, recipient)
	} else {
		v.paid[recipient] -= amount
	}
	return nil
}

func (v *Vault) Balance(_ context.Context) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balance, nil
}

// PaidTo reports the cumulative amount released to one recipient. Intended
// for tests.
func (v *Vault) PaidTo(recipient string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.paid[recipient]
}
