package service

import "errors"

var (
	// ErrAssetNotInPool is returned when the vault's token list for the
	// pool id does not contain the pool's own base or bond asset.
	ErrAssetNotInPool = errors.New("pool asset not present in vault token list")

	// ErrBadPoolConfig is returned when on-chain pool configuration does
	// not fit the expected ranges (e.g. a timestamp beyond int64).
	ErrBadPoolConfig = errors.New("pool configuration out of range")

	// ErrNegativeAmount is returned for trade amounts below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")
)
