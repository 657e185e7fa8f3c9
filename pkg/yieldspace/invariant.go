package yieldspace

import "math/big"

// SolveTradeInvariant solves the conserved invariant
//
//	reserveX^a + reserveY^a = k
//
// for the Y-side change implied by moving the X reserve by amountX. All
// amounts are 18-decimal fixed point. X is always the side whose reserve
// explicitly changes by amountX; out selects whether the pool receives
// amountX on the X side and pays out Y (true), or produces amountX from
// the X side and receives Y (false).
//
// A zero amountX is the identity trade and returns zero without touching
// the curve. Underflows here mean the trade exceeds what the curve and
// reserves can support and surface as ErrInsufficientLiquidity.
func SolveTradeInvariant(amountX, reserveX, reserveY, a *big.Int, out bool) (*big.Int, error) {
	if amountX.Sign() == 0 {
		return new(big.Int), nil
	}

	xBeforePowA, err := Pow(reserveX, a)
	if err != nil {
		return nil, err
	}
	yBeforePowA, err := Pow(reserveY, a)
	if err != nil {
		return nil, err
	}

	var newX *big.Int
	if out {
		newX = new(big.Int).Add(reserveX, amountX)
	} else {
		newX, err = Sub(reserveX, amountX)
		if err != nil {
			return nil, ErrInsufficientLiquidity
		}
	}

	xAfterPowA, err := Pow(newX, a)
	if err != nil {
		return nil, err
	}

	// yAfter^a = (xBefore^a + yBefore^a) - xAfter^a
	yAfterPowA, err := Sub(new(big.Int).Add(xBeforePowA, yBeforePowA), xAfterPowA)
	if err != nil {
		return nil, ErrInsufficientLiquidity
	}

	// Raise back to linear scale through the reciprocal exponent.
	invA, err := DivDown(One, a)
	if err != nil {
		return nil, err
	}
	newY, err := Pow(yAfterPowA, invA)
	if err != nil {
		return nil, err
	}

	var amountY *big.Int
	if out {
		// Pool pays out: the Y reserve decreases.
		amountY, err = Sub(reserveY, newY)
	} else {
		// Pool receives: the Y reserve increases.
		amountY, err = Sub(newY, reserveY)
	}
	if err != nil {
		return nil, ErrInsufficientLiquidity
	}
	return amountY, nil
}
