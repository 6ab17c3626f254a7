package token

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	assetA = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	holder = common.HexToAddress("0x0000000000000000000000000000000000000a11")
)

func TestMintAndBalance(t *testing.T) {
	l := NewLedger()
	if err := l.Mint(holder, assetA, uint256.NewInt(500)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if !l.BalanceOf(holder, assetA).Eq(uint256.NewInt(500)) {
		t.Fatalf("balance %s, want 500", l.BalanceOf(holder, assetA).Dec())
	}
	if err := l.Mint(holder, assetA, uint256.NewInt(0)); err != ErrInvalidAmount {
		t.Fatalf("zero mint: expected ErrInvalidAmount, got %v", err)
	}
}

func TestPullFrom(t *testing.T) {
	l := NewLedger()
	if err := l.Mint(holder, assetA, uint256.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if err := l.PullFrom(holder, assetA, uint256.NewInt(60)); err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if !l.BalanceOf(holder, assetA).Eq(uint256.NewInt(40)) {
		t.Fatalf("balance %s, want 40", l.BalanceOf(holder, assetA).Dec())
	}

	if err := l.PullFrom(holder, assetA, uint256.NewInt(41)); err != ErrInsufficientBalance {
		t.Fatalf("overdraft: expected ErrInsufficientBalance, got %v", err)
	}
	if !l.BalanceOf(holder, assetA).Eq(uint256.NewInt(40)) {
		t.Fatalf("failed pull changed the balance")
	}

	// zero pull is a no-op
	if err := l.PullFrom(holder, assetA, uint256.NewInt(0)); err != nil {
		t.Fatalf("zero pull: %v", err)
	}
}

func TestPushTo(t *testing.T) {
	l := NewLedger()
	if err := l.PushTo(holder, assetA, uint256.NewInt(25)); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if !l.BalanceOf(holder, assetA).Eq(uint256.NewInt(25)) {
		t.Fatalf("balance %s, want 25", l.BalanceOf(holder, assetA).Dec())
	}
}

func TestCreditOverflow(t *testing.T) {
	l := NewLedger()
	max := new(uint256.Int).SetAllOne()
	if err := l.Mint(holder, assetA, max); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := l.Mint(holder, assetA, uint256.NewInt(1)); err != ErrBalanceOverflow {
		t.Fatalf("expected ErrBalanceOverflow, got %v", err)
	}
	if !l.BalanceOf(holder, assetA).Eq(max) {
		t.Fatalf("failed credit changed the balance")
	}
}
