// Package amm implements a constant-product (x*y=k) market maker for a
// single token pair with integrated liquidity-provider share accounting.
package amm

import "github.com/holiman/uint256"

// fee: 0.3% => multiplier 997/1000
var (
	feeMul = uint256.NewInt(997)
	feeDen = uint256.NewInt(1000)
)

// priceScale is the 18-decimal fixed-point scale used for spot prices.
var priceScale = new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(18))

// GetAmountOut returns the fee-adjusted constant-product output for swapping
// amountIn against reserves (reserveIn, reserveOut):
//
//	out = (amountIn*997 * reserveOut) / (reserveIn*1000 + amountIn*997)
//
// using floor division, so the rounding remainder always stays in the pool.
// Returns ErrInvalidInput when any argument is nil or zero and ErrOverflow
// when an intermediate product exceeds 256 bits.
func GetAmountOut(amountIn, reserveIn, reserveOut *uint256.Int) (*uint256.Int, error) {
	if amountIn == nil || reserveIn == nil || reserveOut == nil ||
		amountIn.IsZero() || reserveIn.IsZero() || reserveOut.IsZero() {
		return nil, ErrInvalidInput
	}

	var effIn, num, den uint256.Int
	if _, overflow := effIn.MulOverflow(amountIn, feeMul); overflow {
		return nil, ErrOverflow
	}
	if _, overflow := num.MulOverflow(&effIn, reserveOut); overflow {
		return nil, ErrOverflow
	}
	if _, overflow := den.MulOverflow(reserveIn, feeDen); overflow {
		return nil, ErrOverflow
	}
	if _, overflow := den.AddOverflow(&den, &effIn); overflow {
		return nil, ErrOverflow
	}
	return new(uint256.Int).Div(&num, &den), nil
}

// sqrt returns floor(√n) via the Babylonian iteration: start at n/2+1 and
// iterate z = (n/z + z) / 2 until it stops decreasing. Inputs below 4 are
// special-cased so the first division is never by zero.
func sqrt(n *uint256.Int) *uint256.Int {
	if n.LtUint64(4) {
		if n.IsZero() {
			return uint256.NewInt(0)
		}
		return uint256.NewInt(1)
	}

	z := new(uint256.Int).Rsh(n, 1)
	z.AddUint64(z, 1)
	y := new(uint256.Int).Set(n)
	var q uint256.Int
	for z.Lt(y) {
		y.Set(z)
		q.Div(n, z)
		z.Add(z, &q)
		z.Rsh(z, 1)
	}
	return y
}

// scalePrice returns reserveB * 1e18 / reserveA. The caller guarantees
// reserveA is non-zero.
func scalePrice(reserveA, reserveB *uint256.Int) (*uint256.Int, error) {
	var num uint256.Int
	if _, overflow := num.MulOverflow(reserveB, priceScale); overflow {
		return nil, ErrOverflow
	}
	return new(uint256.Int).Div(&num, reserveA), nil
}
