package yieldspace

import (
	"math/big"
	"testing"
)

func TestNormalizeDecimals(t *testing.T) {
	up := NormalizeDecimals(big.NewInt(1_234_567), 6, 18)
	want := new(big.Int).Mul(big.NewInt(1_234_567), tenPow(12))
	if up.Cmp(want) != 0 {
		t.Fatalf("scale up: got %s want %s", up, want)
	}

	down := NormalizeDecimals(up, 18, 6)
	if down.Cmp(big.NewInt(1_234_567)) != 0 {
		t.Fatalf("round trip: got %s want 1234567", down)
	}

	same := NormalizeDecimals(big.NewInt(42), 6, 6)
	if same.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("same scale: got %s want 42", same)
	}
}

func TestNormalizeDecimals_Truncates(t *testing.T) {
	// precision below the target scale is dropped, never rounded up
	in := new(big.Int).Add(tenPow(12), big.NewInt(5))
	got := NormalizeDecimals(in, 18, 6)
	if got.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("got %s want 1", got)
	}

	sub := big.NewInt(999_999_999_999)
	if got := NormalizeDecimals(sub, 18, 6); got.Sign() != 0 {
		t.Fatalf("sub-precision amount must truncate to 0, got %s", got)
	}
}

func TestNormalizeDecimals_DoesNotAliasInput(t *testing.T) {
	in := big.NewInt(1000)
	out := NormalizeDecimals(in, 6, 18)
	out.SetInt64(0)
	if in.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("input mutated: %s", in)
	}
}
