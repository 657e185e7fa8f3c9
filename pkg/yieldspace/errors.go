package yieldspace

import "errors"

var (
	// ErrDivisionByZero indicates a fixed-point division with a zero
	// divisor. Always a configuration fault (e.g. unitSeconds == 0).
	ErrDivisionByZero = errors.New("fixed point: division by zero")

	// ErrUnderflow indicates a fixed-point subtraction would go negative
	// in unsigned space. In YieldExponent it means the remaining time
	// exceeds one full unit period, a misconfigured pool.
	ErrUnderflow = errors.New("fixed point: subtraction underflow")

	// ErrInsufficientLiquidity is the solver's remapping of an underflow
	// at a trade-sized subtraction: the trade is larger than the curve
	// and reserves can support. Recoverable by reducing the trade size.
	ErrInsufficientLiquidity = errors.New("trade exceeds available liquidity")

	// ErrDegenerateCurve indicates the computed curve exponent is exactly
	// zero, which would divide by zero inside the reciprocal-exponent
	// step of the solver.
	ErrDegenerateCurve = errors.New("curve exponent is zero")

	// ErrExponentDomain indicates Pow was called with operands outside
	// its validated domain.
	ErrExponentDomain = errors.New("pow: operands outside supported domain")
)
