// Package token provides an in-memory fungible-balance ledger. It stands in
// for the token contracts the pool trades against and implements the pool's
// transfer adapter.
package token

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Ledger tracks per-asset holder balances. Pulling moves funds out of the
// holder's balance into pool custody; the pool's own accounting of custody
// is its reserves, so the ledger does not track a pool-side balance.
type Ledger struct {
	mu       sync.RWMutex
	balances map[common.Address]map[common.Address]*uint256.Int // asset -> holder
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[common.Address]map[common.Address]*uint256.Int)}
}

// Mint credits amount of asset to holder.
func (l *Ledger) Mint(holder, asset common.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.credit(holder, asset, amount)
}

// BalanceOf returns a copy of holder's balance of asset, zero if none.
func (l *Ledger) BalanceOf(holder, asset common.Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := new(uint256.Int)
	if holders := l.balances[asset]; holders != nil {
		if cur := holders[holder]; cur != nil {
			out.Set(cur)
		}
	}
	return out
}

// PullFrom debits amount of asset from participant. A zero amount is a
// no-op. Fails with ErrInsufficientBalance when the participant holds less
// than amount, moving nothing.
func (l *Ledger) PullFrom(participant, asset common.Address, amount *uint256.Int) error {
	if amount == nil {
		return ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	holders := l.balances[asset]
	if holders == nil {
		return ErrInsufficientBalance
	}
	cur := holders[participant]
	if cur == nil || cur.Lt(amount) {
		return ErrInsufficientBalance
	}
	cur.Sub(cur, amount)
	if cur.IsZero() {
		delete(holders, participant)
	}
	return nil
}

// PushTo credits amount of asset to participant. A zero amount is a no-op.
func (l *Ledger) PushTo(participant, asset common.Address, amount *uint256.Int) error {
	if amount == nil {
		return ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.credit(participant, asset, amount)
}

func (l *Ledger) credit(holder, asset common.Address, amount *uint256.Int) error {
	holders := l.balances[asset]
	if holders == nil {
		holders = make(map[common.Address]*uint256.Int)
		l.balances[asset] = holders
	}
	cur := holders[holder]
	if cur == nil {
		cur = new(uint256.Int)
		holders[holder] = cur
	}
	var next uint256.Int
	if _, overflow := next.AddOverflow(cur, amount); overflow {
		return ErrBalanceOverflow
	}
	cur.Set(&next)
	return nil
}
