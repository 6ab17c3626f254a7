package amm

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Pool is the single long-lived exchange aggregate: two authoritative token
// reserves plus the LP share ledger. Reserves are never read from the token
// side, so donating tokens to the pool's custody cannot move the price.
//
// Mutating operations (AddLiquidity, RemoveLiquidity, Swap) are serialized
// by a non-reentrant guard held across the external transfer calls; a
// second mutating call arriving while one is in flight fails with
// ErrReentrancy instead of queueing. Reads take a snapshot and observe
// either the pre- or post-state of an in-flight mutation, never an
// intermediate one.
type Pool struct {
	tokenA common.Address
	tokenB common.Address

	transfers TransferAdapter
	sink      EventSink

	// busy is the reentrancy guard. It is held for the whole mutating
	// operation, including the adapter calls, which are the only points
	// where control leaves the engine.
	busy atomic.Bool

	mu          sync.RWMutex // guards the fields below
	reserveA    uint256.Int
	reserveB    uint256.Int
	totalShares uint256.Int
	shares      map[common.Address]*uint256.Int
}

// NewPool creates an empty pool for the (tokenA, tokenB) pair. The two
// asset identifiers must be distinct and non-zero. sink may be nil, in
// which case notification records are discarded.
func NewPool(tokenA, tokenB common.Address, transfers TransferAdapter, sink EventSink) (*Pool, error) {
	if tokenA == (common.Address{}) || tokenB == (common.Address{}) || tokenA == tokenB || transfers == nil {
		return nil, ErrInvalidInput
	}
	return &Pool{
		tokenA:    tokenA,
		tokenB:    tokenB,
		transfers: transfers,
		sink:      sink,
		shares:    make(map[common.Address]*uint256.Int),
	}, nil
}

// TokenA returns the identifier of the pool's first asset.
func (p *Pool) TokenA() common.Address { return p.tokenA }

// TokenB returns the identifier of the pool's second asset.
func (p *Pool) TokenB() common.Address { return p.tokenB }

func (p *Pool) enter() error {
	if !p.busy.CompareAndSwap(false, true) {
		return ErrReentrancy
	}
	return nil
}

func (p *Pool) leave() { p.busy.Store(false) }

func (p *Pool) emit(ev Event) {
	if p.sink != nil {
		p.sink.Record(ev)
	}
}

// snapshot copies the current reserves and total shares. Callers holding
// the busy guard are the only writers, so a read lock suffices.
func (p *Pool) snapshot() (reserveA, reserveB, totalShares *uint256.Int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return new(uint256.Int).Set(&p.reserveA),
		new(uint256.Int).Set(&p.reserveB),
		new(uint256.Int).Set(&p.totalShares)
}

// AddLiquidity deposits amountA of token A and up to amountB of token B and
// mints LP shares to provider.
//
// On an empty pool the provider seeds the price freely and receives
// floor(sqrt(amountA*amountB)) shares. On a seeded pool the deposit must
// match the current ratio: amountB must be at least
// floor(amountA*reserveB/reserveA), and only that optimal amount is pulled.
// Any excess B the caller offered is left untouched in the caller's balance
// — it is not pulled and no refund transfer is issued.
func (p *Pool) AddLiquidity(provider common.Address, amountA, amountB *uint256.Int) (*uint256.Int, error) {
	if provider == (common.Address{}) || amountA == nil || amountB == nil ||
		amountA.IsZero() || amountB.IsZero() {
		return nil, ErrInvalidInput
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	reserveA, reserveB, totalShares := p.snapshot()

	var minted, usedB *uint256.Int
	if totalShares.IsZero() {
		// Seeding: shares are the geometric mean of the two deposits,
		// canonical regardless of which asset is called A or B.
		var product uint256.Int
		if _, overflow := product.MulOverflow(amountA, amountB); overflow {
			return nil, ErrOverflow
		}
		minted = sqrt(&product)
		if minted.IsZero() {
			return nil, ErrInsufficientShares
		}
		usedB = new(uint256.Int).Set(amountB)
	} else {
		var num uint256.Int
		if _, overflow := num.MulOverflow(amountA, reserveB); overflow {
			return nil, ErrOverflow
		}
		optimalB := new(uint256.Int).Div(&num, reserveA)
		if amountB.Lt(optimalB) {
			return nil, ErrRatioMismatch
		}
		if _, overflow := num.MulOverflow(amountA, totalShares); overflow {
			return nil, ErrOverflow
		}
		minted = new(uint256.Int).Div(&num, reserveA)
		if minted.IsZero() {
			return nil, ErrInsufficientShares
		}
		usedB = optimalB
	}

	var newReserveA, newReserveB, newTotal uint256.Int
	if _, overflow := newReserveA.AddOverflow(reserveA, amountA); overflow {
		return nil, ErrOverflow
	}
	if _, overflow := newReserveB.AddOverflow(reserveB, usedB); overflow {
		return nil, ErrOverflow
	}
	if _, overflow := newTotal.AddOverflow(totalShares, minted); overflow {
		return nil, ErrOverflow
	}

	if err := p.transfers.PullFrom(provider, p.tokenA, amountA); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	if err := p.transfers.PullFrom(provider, p.tokenB, usedB); err != nil {
		// Compensate the first pull so a failed operation moves no funds.
		if refundErr := p.transfers.PushTo(provider, p.tokenA, amountA); refundErr != nil {
			return nil, fmt.Errorf("%w: %v (refund failed: %v)", ErrTransferFailed, err, refundErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	p.mu.Lock()
	p.reserveA.Set(&newReserveA)
	p.reserveB.Set(&newReserveB)
	p.totalShares.Set(&newTotal)
	balance := p.shares[provider]
	if balance == nil {
		balance = new(uint256.Int)
		p.shares[provider] = balance
	}
	balance.Add(balance, minted)
	p.mu.Unlock()

	p.emit(LiquidityAdded{
		Provider:     provider,
		AmountA:      new(uint256.Int).Set(amountA),
		AmountB:      new(uint256.Int).Set(usedB),
		SharesMinted: new(uint256.Int).Set(minted),
		TotalShares:  new(uint256.Int).Set(&newTotal),
	})
	return minted, nil
}

// RemoveLiquidity burns shareAmount of the provider's LP shares and pays
// out the proportional slice of both reserves, floor-divided.
func (p *Pool) RemoveLiquidity(provider common.Address, shareAmount *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	if provider == (common.Address{}) || shareAmount == nil || shareAmount.IsZero() {
		return nil, nil, ErrInvalidInput
	}
	if err := p.enter(); err != nil {
		return nil, nil, err
	}
	defer p.leave()

	reserveA, reserveB, totalShares := p.snapshot()

	p.mu.RLock()
	holding := new(uint256.Int)
	if cur := p.shares[provider]; cur != nil {
		holding.Set(cur)
	}
	p.mu.RUnlock()

	if totalShares.IsZero() || holding.Lt(shareAmount) {
		return nil, nil, ErrInsufficientShares
	}

	var num uint256.Int
	if _, overflow := num.MulOverflow(shareAmount, reserveA); overflow {
		return nil, nil, ErrOverflow
	}
	amountA := new(uint256.Int).Div(&num, totalShares)
	if _, overflow := num.MulOverflow(shareAmount, reserveB); overflow {
		return nil, nil, ErrOverflow
	}
	amountB := new(uint256.Int).Div(&num, totalShares)
	if amountA.IsZero() || amountB.IsZero() {
		return nil, nil, ErrInsufficientShares
	}

	// shareAmount <= totalShares, so the payouts never exceed the reserves.
	newReserveA := new(uint256.Int).Sub(reserveA, amountA)
	newReserveB := new(uint256.Int).Sub(reserveB, amountB)
	newTotal := new(uint256.Int).Sub(totalShares, shareAmount)

	if err := p.transfers.PushTo(provider, p.tokenA, amountA); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	if err := p.transfers.PushTo(provider, p.tokenB, amountB); err != nil {
		// Claw back the first payout so a failed operation moves no funds.
		if refundErr := p.transfers.PullFrom(provider, p.tokenA, amountA); refundErr != nil {
			return nil, nil, fmt.Errorf("%w: %v (clawback failed: %v)", ErrTransferFailed, err, refundErr)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	p.mu.Lock()
	p.reserveA.Set(newReserveA)
	p.reserveB.Set(newReserveB)
	p.totalShares.Set(newTotal)
	balance := p.shares[provider]
	balance.Sub(balance, shareAmount)
	if balance.IsZero() {
		delete(p.shares, provider)
	}
	p.mu.Unlock()

	p.emit(LiquidityRemoved{
		Provider:     provider,
		AmountA:      new(uint256.Int).Set(amountA),
		AmountB:      new(uint256.Int).Set(amountB),
		SharesBurned: new(uint256.Int).Set(shareAmount),
		TotalShares:  new(uint256.Int).Set(newTotal),
	})
	return amountA, amountB, nil
}

// Swap trades amountIn of tokenIn for the opposing asset at the
// fee-adjusted constant-product price. tokenIn must be one of the pool's
// two assets. A swap can never drain a reserve to zero.
func (p *Pool) Swap(trader, tokenIn common.Address, amountIn *uint256.Int) (*uint256.Int, error) {
	if trader == (common.Address{}) || amountIn == nil || amountIn.IsZero() {
		return nil, ErrInvalidInput
	}
	if tokenIn != p.tokenA && tokenIn != p.tokenB {
		return nil, ErrInvalidInput
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	reserveA, reserveB, _ := p.snapshot()
	if reserveA.IsZero() || reserveB.IsZero() {
		return nil, ErrInsufficientLiquidity
	}

	aToB := tokenIn == p.tokenA
	reserveIn, reserveOut := reserveA, reserveB
	tokenOut := p.tokenB
	if !aToB {
		reserveIn, reserveOut = reserveB, reserveA
		tokenOut = p.tokenA
	}

	amountOut, err := GetAmountOut(amountIn, reserveIn, reserveOut)
	if err != nil {
		return nil, err
	}
	if amountOut.IsZero() {
		return nil, ErrInsufficientOutput
	}
	if !amountOut.Lt(reserveOut) {
		return nil, ErrInsufficientLiquidity
	}

	var newReserveIn uint256.Int
	if _, overflow := newReserveIn.AddOverflow(reserveIn, amountIn); overflow {
		return nil, ErrOverflow
	}
	newReserveOut := new(uint256.Int).Sub(reserveOut, amountOut)

	if err := p.transfers.PullFrom(trader, tokenIn, amountIn); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	if err := p.transfers.PushTo(trader, tokenOut, amountOut); err != nil {
		if refundErr := p.transfers.PushTo(trader, tokenIn, amountIn); refundErr != nil {
			return nil, fmt.Errorf("%w: %v (refund failed: %v)", ErrTransferFailed, err, refundErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	p.mu.Lock()
	if aToB {
		p.reserveA.Set(&newReserveIn)
		p.reserveB.Set(newReserveOut)
	} else {
		p.reserveB.Set(&newReserveIn)
		p.reserveA.Set(newReserveOut)
	}
	finalA := new(uint256.Int).Set(&p.reserveA)
	finalB := new(uint256.Int).Set(&p.reserveB)
	p.mu.Unlock()

	p.emit(SwapExecuted{
		Trader:    trader,
		TokenIn:   tokenIn,
		TokenOut:  tokenOut,
		AmountIn:  new(uint256.Int).Set(amountIn),
		AmountOut: new(uint256.Int).Set(amountOut),
		ReserveA:  finalA,
		ReserveB:  finalB,
	})
	return amountOut, nil
}

// Price returns the spot price reserveB/reserveA scaled by 1e18. Fails
// with ErrNoLiquidity on an empty pool.
func (p *Pool) Price() (*uint256.Int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.reserveA.IsZero() {
		return nil, ErrNoLiquidity
	}
	return scalePrice(&p.reserveA, &p.reserveB)
}

// Reserves returns a snapshot of (reserveA, reserveB, totalShares).
func (p *Pool) Reserves() (reserveA, reserveB, totalShares *uint256.Int) {
	return p.snapshot()
}

// SharesOf returns the LP share balance of participant, zero if none.
func (p *Pool) SharesOf(participant common.Address) *uint256.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := new(uint256.Int)
	if cur := p.shares[participant]; cur != nil {
		out.Set(cur)
	}
	return out
}
