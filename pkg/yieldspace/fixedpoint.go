// Package yieldspace prices trades against a fixed-maturity two-asset pool
// whose bonding curve decays toward a linear invariant as maturity nears.
// All arithmetic is integer fixed point at 18 decimals so that quotes match
// on-chain settlement bit for bit.
package yieldspace

import "math/big"

// One is the 18-decimal fixed-point representation of 1.0.
var One = tenPow(18)

func tenPow(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// Sub computes x - y, failing with ErrUnderflow if y > x. The failure is
// meaningful system-wide: at trade-sized call sites it means the reserves
// cannot support the operation, not a generic bug.
func Sub(x, y *big.Int) (*big.Int, error) {
	if y.Cmp(x) > 0 {
		return nil, ErrUnderflow
	}
	return new(big.Int).Sub(x, y), nil
}

// DivDown computes floor(x * One / y). The numerator is widened before the
// division so no precision is lost to an intermediate truncation.
func DivDown(x, y *big.Int) (*big.Int, error) {
	if y.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	z := new(big.Int).Mul(x, One)
	return z.Quo(z, y), nil
}
