package store

import (
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/shahanth4444/dex-amm/pkg/amm"
)

var (
	provider = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	tokenA   = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	tokenB   = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	j, err := Open(":memory:", logger)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j := newTestJournal(t)

	j.Record(amm.LiquidityAdded{
		Provider:     provider,
		AmountA:      uint256.NewInt(100),
		AmountB:      uint256.NewInt(200),
		SharesMinted: uint256.NewInt(141),
		TotalShares:  uint256.NewInt(141),
	})
	j.Record(amm.SwapExecuted{
		Trader:    provider,
		TokenIn:   tokenA,
		TokenOut:  tokenB,
		AmountIn:  uint256.NewInt(10),
		AmountOut: uint256.NewInt(18),
		ReserveA:  uint256.NewInt(110),
		ReserveB:  uint256.NewInt(182),
	})
	j.Record(amm.LiquidityRemoved{
		Provider:     provider,
		AmountA:      uint256.NewInt(110),
		AmountB:      uint256.NewInt(182),
		SharesBurned: uint256.NewInt(141),
		TotalShares:  uint256.NewInt(0),
	})

	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// newest first
	if entries[0].Kind != "liquidity_removed" || entries[2].Kind != "liquidity_added" {
		t.Fatalf("unexpected ordering: %s, %s, %s", entries[0].Kind, entries[1].Kind, entries[2].Kind)
	}

	swap := entries[1]
	if swap.Kind != "swap" || swap.AmountIn != "10" || swap.AmountOut != "18" {
		t.Fatalf("unexpected swap entry: %+v", swap)
	}
	if swap.TokenIn != tokenA.Hex() || swap.TokenOut != tokenB.Hex() {
		t.Fatalf("unexpected swap tokens: %s -> %s", swap.TokenIn, swap.TokenOut)
	}

	added := entries[2]
	if added.Participant != provider.Hex() || added.Shares != "141" || added.TotalShares != "141" {
		t.Fatalf("unexpected add entry: %+v", added)
	}
}

func TestJournal_RecentLimit(t *testing.T) {
	j := newTestJournal(t)
	for i := 0; i < 5; i++ {
		j.Record(amm.SwapExecuted{
			Trader:    provider,
			TokenIn:   tokenA,
			TokenOut:  tokenB,
			AmountIn:  uint256.NewInt(uint64(i + 1)),
			AmountOut: uint256.NewInt(1),
			ReserveA:  uint256.NewInt(1),
			ReserveB:  uint256.NewInt(1),
		})
	}

	entries, err := j.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].AmountIn != "5" || entries[1].AmountIn != "4" {
		t.Fatalf("unexpected window: %s, %s", entries[0].AmountIn, entries[1].AmountIn)
	}
}

func TestJournal_EmptyRead(t *testing.T) {
	j := newTestJournal(t)
	entries, err := j.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}
