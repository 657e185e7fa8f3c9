package yieldspace

import "math/big"

// The exp/ln decomposition runs at an internal 36-decimal scale so that the
// floor taken at every series step stays far below the final 18-decimal
// unit of precision.
var (
	e18   = tenPow(18)
	one36 = tenPow(36)
	two36 = new(big.Int).Lsh(tenPow(36), 1)

	// ln(2) truncated to 36 decimals.
	ln2x36, _ = new(big.Int).SetString("693147180559945309417232121458176568", 10)

	// |exponent * ln(base)| is capped at 130, bounding results near
	// e^130 (~3e56). Legitimate reserve and exponent ranges sit well
	// inside this.
	maxPowArg = new(big.Int).Mul(big.NewInt(130), tenPow(36))
)

// Pow computes base^exponent for 18-decimal fixed-point operands via
// exp(exponent * ln(base)). The exponent must be positive; a zero base
// yields zero, matching the reference convention for a fully drained
// reserve side. An argument outside the capped exp domain fails with
// ErrExponentDomain rather than returning a diverged approximation.
func Pow(base, exponent *big.Int) (*big.Int, error) {
	if exponent.Sign() <= 0 || base.Sign() < 0 {
		return nil, ErrExponentDomain
	}
	if base.Sign() == 0 {
		return new(big.Int), nil
	}
	if exponent.Cmp(One) == 0 {
		return new(big.Int).Set(base), nil
	}

	p := ln36(base)
	p.Mul(p, exponent)
	p.Quo(p, One)
	if p.CmpAbs(maxPowArg) > 0 {
		return nil, ErrExponentDomain
	}

	z := exp36(p)
	return z.Quo(z, e18), nil
}

// ln36 returns ln(x) at 36-decimal scale for a positive 18-decimal x.
//
// x is normalized into [1, 2) by powers of two, so ln(x) = k*ln(2) + ln(m).
// ln(m) uses the artanh series 2*(z + z^3/3 + z^5/5 + ...) with
// z = (m-1)/(m+1) < 1/3, which converges well inside the internal scale.
func ln36(x18 *big.Int) *big.Int {
	x := new(big.Int).Mul(x18, e18)

	k := int64(0)
	for x.Cmp(two36) >= 0 {
		x.Rsh(x, 1)
		k++
	}
	for x.Cmp(one36) < 0 {
		x.Lsh(x, 1)
		k--
	}

	z := new(big.Int).Sub(x, one36)
	den := new(big.Int).Add(x, one36)
	z.Mul(z, one36)
	z.Quo(z, den)

	zsq := new(big.Int).Mul(z, z)
	zsq.Quo(zsq, one36)

	sum := new(big.Int).Set(z)
	term := new(big.Int).Set(z)
	q := new(big.Int)
	for i := int64(3); ; i += 2 {
		term.Mul(term, zsq)
		term.Quo(term, one36)
		q.Quo(term, big.NewInt(i))
		if q.Sign() == 0 {
			break
		}
		sum.Add(sum, q)
	}
	sum.Lsh(sum, 1)

	res := big.NewInt(k)
	res.Mul(res, ln2x36)
	return res.Add(res, sum)
}

// exp36 returns e^p at 36-decimal scale for a 36-decimal p of either sign.
//
// p is split as p = n*ln(2) + r with r in [0, ln 2), so e^p = 2^n * e^r;
// the power of two is an exact shift and e^r is a Taylor series summed
// until its terms vanish at the internal scale.
func exp36(p *big.Int) *big.Int {
	n := new(big.Int)
	r := new(big.Int)
	n.DivMod(p, ln2x36, r)

	sum := new(big.Int).Set(one36)
	term := new(big.Int).Set(one36)
	for i := int64(1); ; i++ {
		term.Mul(term, r)
		term.Quo(term, one36)
		term.Quo(term, big.NewInt(i))
		if term.Sign() == 0 {
			break
		}
		sum.Add(sum, term)
	}

	if n.Sign() >= 0 {
		return sum.Lsh(sum, uint(n.Uint64()))
	}
	return sum.Rsh(sum, uint(n.Neg(n).Uint64()))
}
