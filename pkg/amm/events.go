package amm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Event is a notification record emitted after a successful mutating
// operation: exactly one per successful call, none on failure.
type Event interface {
	Kind() string
}

// EventSink consumes notification records, e.g. an indexer or a journal.
// Record must not call back into the pool; mutating operations reject
// re-entry.
type EventSink interface {
	Record(Event)
}

type LiquidityAdded struct {
	Provider     common.Address
	AmountA      *uint256.Int
	AmountB      *uint256.Int
	SharesMinted *uint256.Int
	TotalShares  *uint256.Int
}

func (LiquidityAdded) Kind() string { return "liquidity_added" }

type LiquidityRemoved struct {
	Provider     common.Address
	AmountA      *uint256.Int
	AmountB      *uint256.Int
	SharesBurned *uint256.Int
	TotalShares  *uint256.Int
}

func (LiquidityRemoved) Kind() string { return "liquidity_removed" }

type SwapExecuted struct {
	Trader    common.Address
	TokenIn   common.Address
	TokenOut  common.Address
	AmountIn  *uint256.Int
	AmountOut *uint256.Int
	ReserveA  *uint256.Int
	ReserveB  *uint256.Int
}

func (SwapExecuted) Kind() string { return "swap" }
