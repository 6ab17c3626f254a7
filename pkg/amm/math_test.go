package amm

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
)

func TestGetAmountOut(t *testing.T) {
	// floor(10*997*200 / (100*1000 + 10*997)) = floor(1994000/109970) = 18
	out, err := GetAmountOut(uint256.NewInt(10), uint256.NewInt(100), uint256.NewInt(200))
	if err != nil {
		t.Fatalf("GetAmountOut failed: %v", err)
	}
	if !out.Eq(uint256.NewInt(18)) {
		t.Fatalf("unexpected: got %s want 18", out.Dec())
	}
}

func TestGetAmountOut_MatchesFormula(t *testing.T) {
	rIn := uint256.NewInt(1_000_000)
	rOut := uint256.NewInt(1_000_000)
	amountIn := uint256.NewInt(1_000)

	out, err := GetAmountOut(amountIn, rIn, rOut)
	if err != nil {
		t.Fatalf("GetAmountOut failed: %v", err)
	}

	// cross-check against big.Int arithmetic
	effIn := new(big.Int).Mul(amountIn.ToBig(), big.NewInt(997))
	num := new(big.Int).Mul(effIn, rOut.ToBig())
	den := new(big.Int).Mul(rIn.ToBig(), big.NewInt(1000))
	den.Add(den, effIn)
	expected := new(big.Int).Div(num, den)

	if out.ToBig().Cmp(expected) != 0 {
		t.Fatalf("unexpected: got %s want %s", out.Dec(), expected)
	}
	if out.IsZero() {
		t.Fatalf("amountOut should be positive")
	}
}

func TestGetAmountOut_InvalidInput(t *testing.T) {
	one := uint256.NewInt(1)
	zero := uint256.NewInt(0)
	cases := []struct {
		name          string
		in, rIn, rOut *uint256.Int
	}{
		{"nil amount", nil, one, one},
		{"zero amount", zero, one, one},
		{"zero reserve in", one, zero, one},
		{"zero reserve out", one, one, zero},
	}
	for _, tc := range cases {
		if _, err := GetAmountOut(tc.in, tc.rIn, tc.rOut); err != ErrInvalidInput {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestGetAmountOut_Overflow(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	if _, err := GetAmountOut(max, uint256.NewInt(1), uint256.NewInt(1)); err != ErrOverflow {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestGetAmountOut_Monotonic(t *testing.T) {
	rIn := uint256.NewInt(10_000)
	rOut := uint256.NewInt(20_000)
	prev := uint256.NewInt(0)
	for in := uint64(1); in <= 500; in++ {
		out, err := GetAmountOut(uint256.NewInt(in), rIn, rOut)
		if err != nil {
			t.Fatalf("GetAmountOut(%d) failed: %v", in, err)
		}
		if out.Lt(prev) {
			t.Fatalf("output decreased at amountIn=%d: %s < %s", in, out.Dec(), prev.Dec())
		}
		prev = out
	}
}

func TestGetAmountOut_BelowNoFeeQuote(t *testing.T) {
	rIn := uint256.NewInt(10_000)
	rOut := uint256.NewInt(20_000)
	for _, in := range []uint64{100, 1_000, 5_000, 9_999} {
		amountIn := uint256.NewInt(in)
		out, err := GetAmountOut(amountIn, rIn, rOut)
		if err != nil {
			t.Fatalf("GetAmountOut(%d) failed: %v", in, err)
		}

		// naive no-fee quote: in*rOut/(rIn+in)
		num := new(uint256.Int).Mul(amountIn, rOut)
		den := new(uint256.Int).Add(rIn, amountIn)
		noFee := num.Div(num, den)

		if !out.Lt(noFee) {
			t.Fatalf("amountIn=%d: fee-adjusted output %s not below no-fee %s", in, out.Dec(), noFee.Dec())
		}
	}
}

func TestSqrt(t *testing.T) {
	cases := []struct {
		n, want uint64
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 1},
		{4, 2}, {8, 2}, {9, 3}, {15, 3}, {16, 4},
		{20_000, 141},
		{1_000_000, 1_000},
		{999_999, 999},
	}
	for _, tc := range cases {
		got := sqrt(uint256.NewInt(tc.n))
		if !got.Eq(uint256.NewInt(tc.want)) {
			t.Fatalf("sqrt(%d): got %s want %d", tc.n, got.Dec(), tc.want)
		}
	}
}

func TestSqrt_ExactFloor(t *testing.T) {
	for n := uint64(0); n < 5_000; n++ {
		got := sqrt(uint256.NewInt(n))
		sq := new(uint256.Int).Mul(got, got)
		if sq.GtUint64(n) {
			t.Fatalf("sqrt(%d)=%s: square exceeds input", n, got.Dec())
		}
		next := new(uint256.Int).AddUint64(got, 1)
		nextSq := new(uint256.Int).Mul(next, next)
		if !nextSq.GtUint64(n) {
			t.Fatalf("sqrt(%d)=%s: not the floor", n, got.Dec())
		}
	}
}

func TestScalePrice(t *testing.T) {
	price, err := scalePrice(uint256.NewInt(100), uint256.NewInt(200))
	if err != nil {
		t.Fatalf("scalePrice failed: %v", err)
	}
	want := new(uint256.Int).Mul(uint256.NewInt(2), priceScale)
	if !price.Eq(want) {
		t.Fatalf("unexpected price: got %s want %s", price.Dec(), want.Dec())
	}
}
