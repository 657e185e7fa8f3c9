package handler

import "github.com/gofiber/fiber/v3"

// ErrInvalidQueryParameters indicates that the request query string could not
// be parsed into the expected structure.
var ErrInvalidQueryParameters = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrAmountRequired is returned when the amount parameter is missing.
var ErrAmountRequired = fiber.NewError(fiber.StatusBadRequest, "amount is required")

// ErrInvalidAmountFormat is returned when the amount cannot be parsed as a
// base-10 integer.
var ErrInvalidAmountFormat = fiber.NewError(fiber.StatusBadRequest, "invalid amount format")

// ErrAmountNegative is returned when the amount is below zero.
var ErrAmountNegative = fiber.NewError(fiber.StatusBadRequest, "amount must not be negative")

// ErrLiquidityExceededBadRequest maps the solver's liquidity bound to a 400:
// the trade is larger than the curve and reserves support. This is the
// normal slippage condition, recoverable by reducing the trade size.
var ErrLiquidityExceededBadRequest = fiber.NewError(fiber.StatusBadRequest, "trade exceeds available liquidity")

// ErrPoolMisconfigured maps configuration faults (zero unit period,
// degenerate curve exponent, remaining time beyond one unit period) to a
// 422. These are not user-recoverable.
var ErrPoolMisconfigured = fiber.NewError(fiber.StatusUnprocessableEntity, "pool is misconfigured")

// ErrQuoteFailedInternal signals a generic server-side quoting error.
var ErrQuoteFailedInternal = fiber.NewError(fiber.StatusInternalServerError, "quote failed")

// NewInvalidAmount wraps an amount parsing error into a 400 Bad Request
// with a descriptive message.
func NewInvalidAmount(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid amount: "+err.Error())
}

// NewAddressRequired returns a 400 Bad Request for a missing address field.
func NewAddressRequired(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" address is required")
}

// NewInvalidAddress returns a 400 Bad Request for an invalid address format.
func NewInvalidAddress(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+" address")
}
