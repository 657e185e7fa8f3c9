package yieldspace

import "math/big"

// YieldExponent derives the curve exponent a = 1 - t as an 18-decimal
// fixed-point value, where t is the fraction of one unit period remaining
// until expiration. Past maturity t saturates to zero and a is exactly One.
//
// The boundary check is deliberately two-stage: the subtraction fails with
// ErrUnderflow only when t > 1 strictly, and t == 1 is caught by the
// explicit zero check afterwards, failing with ErrDegenerateCurve. Both
// indicate a misconfigured pool, not a liquidity condition.
func YieldExponent(expiration, unitSeconds, now int64) (*big.Int, error) {
	if unitSeconds <= 0 {
		return nil, ErrDivisionByZero
	}

	timeTillExpiry := expiration - now
	if timeTillExpiry < 0 {
		timeTillExpiry = 0
	}

	t, err := DivDown(
		new(big.Int).Mul(big.NewInt(timeTillExpiry), One),
		new(big.Int).Mul(big.NewInt(unitSeconds), One),
	)
	if err != nil {
		return nil, err
	}

	a, err := Sub(One, t)
	if err != nil {
		return nil, err
	}
	if a.Sign() == 0 {
		return nil, ErrDegenerateCurve
	}
	return a, nil
}
