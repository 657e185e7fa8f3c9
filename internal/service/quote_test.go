package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/LocklessFinance/lkl-protocol/pkg/yieldspace"
)

// fakeChain serves eth_blockNumber and eth_call over an in-process RPC
// server. Contract returns are keyed by address and 4-byte selector.
type fakeChain struct {
	blockNumber uint64
	contracts   map[common.Address]map[string][]byte
}

func (f *fakeChain) BlockNumber(ctx context.Context) (hexutil.Uint64, error) {
	return hexutil.Uint64(f.blockNumber), nil
}

type callArgs struct {
	To    *common.Address `json:"to"`
	Input *hexutil.Bytes  `json:"input"`
	Data  *hexutil.Bytes  `json:"data"`
}

func (f *fakeChain) Call(ctx context.Context, args callArgs, _ gethrpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	var data []byte
	switch {
	case args.Input != nil:
		data = *args.Input
	case args.Data != nil:
		data = *args.Data
	}
	if args.To == nil || len(data) < 4 {
		return nil, fmt.Errorf("malformed call")
	}
	if m, ok := f.contracts[*args.To]; ok {
		if ret, ok2 := m[string(data[:4])]; ok2 {
			return hexutil.Bytes(ret), nil
		}
	}
	return nil, fmt.Errorf("no contract return for %s", hexutil.Encode(data[:4]))
}

func newInprocEthClient(t *testing.T, fc *fakeChain) *ethclient.Client {
	t.Helper()
	srv := gethrpc.NewServer()
	// Register under the standard "eth" namespace so methods map to eth_*
	if err := srv.RegisterName("eth", fc); err != nil {
		t.Fatalf("register rpc service: %v", err)
	}
	c := gethrpc.DialInProc(srv)
	return ethclient.NewClient(c)
}

func methodReturn(t *testing.T, contract *gethabi.ABI, method string, vals ...any) (string, []byte) {
	t.Helper()
	m, ok := contract.Methods[method]
	if !ok {
		t.Fatalf("no such method %s", method)
	}
	out, err := m.Outputs.Pack(vals...)
	if err != nil {
		t.Fatalf("pack %s return: %v", method, err)
	}
	return string(m.ID), out
}

const testNow = int64(1_700_000_000)

var (
	testPool  = common.HexToAddress("0x0000000000000000000000000000000000000abc")
	testVault = common.HexToAddress("0x0000000000000000000000000000000000000def")
	testBase  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testBond  = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

func sixDec(tokens int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(tokens), new(big.Int).Exp(big.NewInt(10), big.NewInt(6), nil))
}

func newTestService(t *testing.T, tokens []common.Address, balances []*big.Int) *QuoteService {
	t.Helper()

	poolID := [32]byte{0x01, 0x02}
	supply := new(big.Int).Mul(big.NewInt(200_000), yieldspace.One)

	poolReturns := map[string][]byte{}
	for _, r := range []struct {
		method string
		vals   []any
	}{
		{"getVault", []any{testVault}},
		{"getPoolId", []any{poolID}},
		{"underlying", []any{testBase}},
		{"bond", []any{testBond}},
		{"totalSupply", []any{supply}},
		{"expiration", []any{big.NewInt(testNow + 15_768_000)}},
		{"unitSeconds", []any{big.NewInt(31_536_000)}},
		{"underlyingDecimals", []any{uint8(6)}},
	} {
		sel, ret := methodReturn(t, &poolABI, r.method, r.vals...)
		poolReturns[sel] = ret
	}

	sel, ret := methodReturn(t, &vaultABI, "getPoolTokens", tokens, balances, big.NewInt(41))
	fc := &fakeChain{
		blockNumber: 42,
		contracts: map[common.Address]map[string][]byte{
			testPool:  poolReturns,
			testVault: {sel: ret},
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewQuoteService(logger, *newInprocEthClient(t, fc))
	svc.now = func() time.Time { return time.Unix(testNow, 0) }
	return svc
}

func TestGetPoolDetails(t *testing.T) {
	t.Parallel()

	svc := newTestService(t,
		[]common.Address{testBase, testBond},
		[]*big.Int{sixDec(1_000_000), sixDec(500_000)},
	)

	snap, err := svc.GetPoolDetails(context.Background(), testPool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.BaseReserves.Cmp(sixDec(1_000_000)) != 0 {
		t.Fatalf("base reserves: got %s", snap.BaseReserves)
	}
	if snap.BondReserves.Cmp(sixDec(500_000)) != 0 {
		t.Fatalf("bond reserves: got %s", snap.BondReserves)
	}
	if snap.Expiration != testNow+15_768_000 {
		t.Fatalf("expiration: got %d", snap.Expiration)
	}
	if snap.UnitSeconds != 31_536_000 {
		t.Fatalf("unit seconds: got %d", snap.UnitSeconds)
	}
	if snap.TokenDecimals != 6 {
		t.Fatalf("decimals: got %d", snap.TokenDecimals)
	}
}

func TestCalculateSwap_BaseInExactIn(t *testing.T) {
	t.Parallel()

	svc := newTestService(t,
		[]common.Address{testBase, testBond},
		[]*big.Int{sixDec(1_000_000), sixDec(500_000)},
	)

	amount := sixDec(1000)
	got, err := svc.CalculateSwap(context.Background(), testPool, amount, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// halfway to maturity: strictly between the constant-product and
	// constant-sum quotes
	cp := new(big.Int).Mul(amount, sixDec(700_000))
	cp.Quo(cp, new(big.Int).Add(sixDec(1_000_000), amount))
	if got.Cmp(cp) <= 0 || got.Cmp(amount) >= 0 {
		t.Fatalf("quote %s outside (%s, %s)", got, cp, amount)
	}
}

func TestCalculateSwap_NegativeAmount(t *testing.T) {
	t.Parallel()

	svc := newTestService(t,
		[]common.Address{testBase, testBond},
		[]*big.Int{sixDec(1_000_000), sixDec(500_000)},
	)

	if _, err := svc.CalculateSwap(context.Background(), testPool, big.NewInt(-1), true, true); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestCalculateSwap_LiquidityExhausted(t *testing.T) {
	t.Parallel()

	svc := newTestService(t,
		[]common.Address{testBase, testBond},
		[]*big.Int{sixDec(1_000_000), sixDec(500_000)},
	)

	// ask for more bond out than the effective bond side holds
	if _, err := svc.CalculateSwap(context.Background(), testPool, sixDec(800_000), true, false); !errors.Is(err, yieldspace.ErrInsufficientLiquidity) {
		t.Fatalf("expected ErrInsufficientLiquidity, got %v", err)
	}
}

func TestGetPoolDetails_AssetMissing(t *testing.T) {
	t.Parallel()

	other := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	svc := newTestService(t,
		[]common.Address{testBase, other},
		[]*big.Int{sixDec(1_000_000), sixDec(500_000)},
	)

	if _, err := svc.GetPoolDetails(context.Background(), testPool); !errors.Is(err, ErrAssetNotInPool) {
		t.Fatalf("expected ErrAssetNotInPool, got %v", err)
	}
}
