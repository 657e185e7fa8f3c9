package yieldspace

import "math/big"

// NormalizeDecimals rescales a non-negative integer amount from one decimal
// precision to another. Scaling down truncates toward zero, so precision
// below the target scale is dropped, never rounded up.
func NormalizeDecimals(amount *big.Int, from, to uint8) *big.Int {
	switch {
	case to > from:
		return new(big.Int).Mul(amount, tenPow(int(to-from)))
	case from > to:
		return new(big.Int).Quo(amount, tenPow(int(from-to)))
	default:
		return new(big.Int).Set(amount)
	}
}
