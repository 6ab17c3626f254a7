package token

import "errors"

var (
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrInvalidAmount       = errors.New("invalid token amount")
	ErrBalanceOverflow     = errors.New("token balance overflow")
)
