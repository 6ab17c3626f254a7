package amm

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrInsufficientOutput    = errors.New("insufficient output amount")
	ErrRatioMismatch         = errors.New("deposit below required pool ratio")
	ErrInsufficientShares    = errors.New("insufficient liquidity shares")
	ErrTransferFailed        = errors.New("token transfer failed")
	ErrReentrancy            = errors.New("reentrant call")
	ErrNoLiquidity           = errors.New("no liquidity in pool")
	ErrOverflow              = errors.New("arithmetic overflow")
)
