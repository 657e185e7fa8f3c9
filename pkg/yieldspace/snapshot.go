package yieldspace

import "math/big"

// PoolSnapshot is a consistent point-in-time view of a term pool: native
// decimal vault balances for both assets, the pool share supply, and the
// curve configuration. It is built fresh per quote and never mutated.
type PoolSnapshot struct {
	// BaseReserves and BondReserves are vault balances in the token's
	// native decimals.
	BaseReserves *big.Int
	BondReserves *big.Int

	// TotalSupply is 18-decimal fixed point and represents bond-side
	// liquidity not yet backed by actual reserve.
	TotalSupply *big.Int

	// Expiration is the maturity timestamp in Unix seconds.
	Expiration int64

	// UnitSeconds is the period over which the curve fully linearizes.
	UnitSeconds int64

	// TokenDecimals is the native precision shared by both assets.
	TokenDecimals uint8
}

// Quote prices a trade against the snapshot at the given wall-clock time.
// amount is a native-decimal integer. baseAssetIn selects which asset the
// trader supplies; out true means amount is the supplied input and the
// result the output, out false means amount is the desired output and the
// result the required input. The result is in native decimals.
func (s *PoolSnapshot) Quote(amount *big.Int, baseAssetIn, out bool, now int64) (*big.Int, error) {
	base := NormalizeDecimals(s.BaseReserves, s.TokenDecimals, 18)

	// The tradeable bond side includes outstanding minted supply on top of
	// the vault balance: bond tokens are redeemable claims, not a literal
	// held balance.
	bond := NormalizeDecimals(s.BondReserves, s.TokenDecimals, 18)
	bond.Add(bond, s.TotalSupply)

	xReserves, yReserves := base, bond
	if !baseAssetIn {
		xReserves, yReserves = bond, base
	}

	a, err := YieldExponent(s.Expiration, s.UnitSeconds, now)
	if err != nil {
		return nil, err
	}

	amountFP := NormalizeDecimals(amount, s.TokenDecimals, 18)

	var quote *big.Int
	if out {
		quote, err = SolveTradeInvariant(amountFP, xReserves, yReserves, a, true)
	} else {
		// Solving "how much input produces a given output" mirrors the
		// forward direction: the stated amount is absorbed by the
		// opposite reserve.
		quote, err = SolveTradeInvariant(amountFP, yReserves, xReserves, a, false)
	}
	if err != nil {
		return nil, err
	}
	return NormalizeDecimals(quote, 18, s.TokenDecimals), nil
}
