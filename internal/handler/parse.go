package handler

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// parseAddress validates and decodes a required hex address field.
func parseAddress(field, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, NewAddressRequired(field)
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, NewInvalidAddress(field)
	}
	return common.HexToAddress(value), nil
}

// parseAmount parses a required positive base-10 amount.
func parseAmount(amountStr string) (*uint256.Int, error) {
	if amountStr == "" {
		return nil, ErrAmountRequired
	}

	amount, err := uint256.FromDecimal(amountStr)
	if err != nil {
		return nil, ErrInvalidAmountFormat
	}

	if amount.IsZero() {
		return nil, ErrAmountNonPositive
	}

	return amount, nil
}
