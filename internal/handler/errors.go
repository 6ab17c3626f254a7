package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/shahanth4444/dex-amm/pkg/amm"
)

// ErrInvalidRequestBody indicates that the request body could not be parsed
// into the expected structure.
var ErrInvalidRequestBody = fiber.NewError(fiber.StatusBadRequest, "invalid request body")

// ErrInvalidQueryParameters indicates that the request query string could
// not be parsed into the expected structure.
var ErrInvalidQueryParameters = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrAmountRequired is returned when a required amount parameter is missing.
var ErrAmountRequired = fiber.NewError(fiber.StatusBadRequest, "amount is required")

// ErrInvalidAmountFormat is returned when an amount cannot be parsed as an
// unsigned base-10 integer.
var ErrInvalidAmountFormat = fiber.NewError(fiber.StatusBadRequest, "invalid amount format")

// ErrAmountNonPositive is returned when an amount is zero.
var ErrAmountNonPositive = fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")

// ErrInvalidInputBadRequest maps engine input validation failures to 400.
var ErrInvalidInputBadRequest = fiber.NewError(fiber.StatusBadRequest, "invalid input")

// ErrInsufficientLiquidityBadRequest maps empty-pool or reserve-draining
// operations to 400.
var ErrInsufficientLiquidityBadRequest = fiber.NewError(fiber.StatusBadRequest, "insufficient liquidity")

// ErrInsufficientOutputBadRequest maps a zero computed output to 400.
var ErrInsufficientOutputBadRequest = fiber.NewError(fiber.StatusBadRequest, "insufficient output amount")

// ErrRatioMismatchBadRequest maps a below-ratio deposit to 400.
var ErrRatioMismatchBadRequest = fiber.NewError(fiber.StatusBadRequest, "deposit below required pool ratio")

// ErrInsufficientSharesBadRequest maps share-balance failures to 400.
var ErrInsufficientSharesBadRequest = fiber.NewError(fiber.StatusBadRequest, "insufficient liquidity shares")

// ErrTransferFailedBadRequest maps adapter transfer failures to 400.
var ErrTransferFailedBadRequest = fiber.NewError(fiber.StatusBadRequest, "token transfer failed")

// ErrNoLiquidityBadRequest maps a price query on an empty pool to 400.
var ErrNoLiquidityBadRequest = fiber.NewError(fiber.StatusBadRequest, "no liquidity in pool")

// ErrOverflowBadRequest maps arithmetic overflow on caller-supplied values
// to 400.
var ErrOverflowBadRequest = fiber.NewError(fiber.StatusBadRequest, "arithmetic overflow")

// ErrPoolBusyConflict maps a rejected re-entrant call to 409.
var ErrPoolBusyConflict = fiber.NewError(fiber.StatusConflict, "pool operation in progress")

// ErrOperationFailedInternal signals a generic server-side failure.
var ErrOperationFailedInternal = fiber.NewError(fiber.StatusInternalServerError, "operation failed")

// NewAddressRequired returns a 400 Bad Request for a missing address field.
func NewAddressRequired(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" address is required")
}

// NewInvalidAddress returns a 400 Bad Request for an invalid address format.
func NewInvalidAddress(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+" address")
}

// mapEngineError translates pool engine sentinels into fiber errors.
func mapEngineError(err error) (error, bool) {
	switch {
	case errors.Is(err, amm.ErrInvalidInput):
		return ErrInvalidInputBadRequest, true
	case errors.Is(err, amm.ErrInsufficientLiquidity):
		return ErrInsufficientLiquidityBadRequest, true
	case errors.Is(err, amm.ErrInsufficientOutput):
		return ErrInsufficientOutputBadRequest, true
	case errors.Is(err, amm.ErrRatioMismatch):
		return ErrRatioMismatchBadRequest, true
	case errors.Is(err, amm.ErrInsufficientShares):
		return ErrInsufficientSharesBadRequest, true
	case errors.Is(err, amm.ErrTransferFailed):
		return ErrTransferFailedBadRequest, true
	case errors.Is(err, amm.ErrNoLiquidity):
		return ErrNoLiquidityBadRequest, true
	case errors.Is(err, amm.ErrOverflow):
		return ErrOverflowBadRequest, true
	case errors.Is(err, amm.ErrReentrancy):
		return ErrPoolBusyConflict, true
	default:
		return nil, false
	}
}
