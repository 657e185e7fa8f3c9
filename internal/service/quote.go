package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"log/slog"

	ethereum "github.com/ethereum/go-ethereum"
	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/LocklessFinance/lkl-protocol/pkg/yieldspace"
)

// Term pools are hosted in a Balancer-style vault: the pool contract holds
// the curve configuration and share supply while the vault holds the actual
// token balances, keyed by pool id.
const poolABIJSON = `[
	{"name":"getVault","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"name":"getPoolId","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"bytes32"}]},
	{"name":"underlying","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"name":"bond","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
	{"name":"totalSupply","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
	{"name":"expiration","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
	{"name":"unitSeconds","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
	{"name":"underlyingDecimals","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"uint8"}]}
]`

const vaultABIJSON = `[
	{"name":"getPoolTokens","type":"function","stateMutability":"view","inputs":[{"name":"poolId","type":"bytes32"}],"outputs":[{"name":"tokens","type":"address[]"},{"name":"balances","type":"uint256[]"},{"name":"lastChangeBlock","type":"uint256"}]}
]`

var (
	poolABI  = mustParseABI(poolABIJSON)
	vaultABI = mustParseABI(vaultABIJSON)
)

func mustParseABI(def string) gethabi.ABI {
	parsed, err := gethabi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

// QuoteService prices trades against fixed-maturity term pools by reading
// pool and vault state on-chain and running the yieldspace solver over a
// single consistent snapshot.
type QuoteService struct {
	BaseService
	ethereumClient *ethclient.Client
	now            func() time.Time
}

// NewQuoteService constructs a QuoteService using the provided logger and
// Ethereum client.
func NewQuoteService(logger *slog.Logger, ec ethclient.Client) *QuoteService {
	return &QuoteService{
		BaseService:    BaseService{logger: logger},
		ethereumClient: &ec,
		now:            time.Now,
	}
}

// CalculateSwap quotes a trade against the pool at the latest block. amount
// is a native-decimal integer; out true means amount is the supplied input
// and the result the output, out false means amount is the desired output
// and the result the required input.
func (s *QuoteService) CalculateSwap(ctx context.Context, pool common.Address, amount *big.Int, baseAssetIn, out bool) (*big.Int, error) {
	s.logger.Debug("calculating swap",
		"pool", pool.Hex(), "amount", amount.String(), "base_in", baseAssetIn, "out", out)

	if amount.Sign() < 0 {
		return nil, ErrNegativeAmount
	}

	snapshot, err := s.GetPoolDetails(ctx, pool)
	if err != nil {
		return nil, err
	}

	quote, err := snapshot.Quote(amount, baseAssetIn, out, s.now().Unix())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("swap quoted", "pool", pool.Hex(), "quote", quote.String())
	return quote, nil
}

// GetPoolDetails reads a consistent pool snapshot at the latest block. All
// calls, including the vault balance lookup, are pinned to the same block
// number so one quote sees one state.
func (s *QuoteService) GetPoolDetails(ctx context.Context, pool common.Address) (*yieldspace.PoolSnapshot, error) {
	bn, err := s.ethereumClient.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("block number: %w", err)
	}
	return s.poolDetailsAt(ctx, pool, new(big.Int).SetUint64(bn))
}

func (s *QuoteService) poolDetailsAt(ctx context.Context, pool common.Address, blockNum *big.Int) (*yieldspace.PoolSnapshot, error) {
	vault, err := s.callAddress(ctx, pool, &poolABI, blockNum, "getVault")
	if err != nil {
		return nil, err
	}
	poolID, err := s.callBytes32(ctx, pool, &poolABI, blockNum, "getPoolId")
	if err != nil {
		return nil, err
	}
	baseAsset, err := s.callAddress(ctx, pool, &poolABI, blockNum, "underlying")
	if err != nil {
		return nil, err
	}
	bondAsset, err := s.callAddress(ctx, pool, &poolABI, blockNum, "bond")
	if err != nil {
		return nil, err
	}
	totalSupply, err := s.callUint256(ctx, pool, &poolABI, blockNum, "totalSupply")
	if err != nil {
		return nil, err
	}
	expiration, err := s.callUint256(ctx, pool, &poolABI, blockNum, "expiration")
	if err != nil {
		return nil, err
	}
	unitSeconds, err := s.callUint256(ctx, pool, &poolABI, blockNum, "unitSeconds")
	if err != nil {
		return nil, err
	}
	decimals, err := s.callUint8(ctx, pool, &poolABI, blockNum, "underlyingDecimals")
	if err != nil {
		return nil, err
	}

	if !expiration.IsInt64() || !unitSeconds.IsInt64() {
		return nil, ErrBadPoolConfig
	}

	baseReserves, bondReserves, err := s.vaultBalances(ctx, vault, blockNum, poolID, baseAsset, bondAsset)
	if err != nil {
		return nil, err
	}

	return &yieldspace.PoolSnapshot{
		BaseReserves:  baseReserves,
		BondReserves:  bondReserves,
		TotalSupply:   totalSupply,
		Expiration:    expiration.Int64(),
		UnitSeconds:   unitSeconds.Int64(),
		TokenDecimals: decimals,
	}, nil
}

// vaultBalances locates the base and bond balances inside the vault's token
// list by address equality. The vault defines the ordering and it is only
// trusted within this single response.
func (s *QuoteService) vaultBalances(ctx context.Context, vault common.Address, blockNum *big.Int, poolID [32]byte, baseAsset, bondAsset common.Address) (*big.Int, *big.Int, error) {
	out, err := s.callAt(ctx, vault, &vaultABI, blockNum, "getPoolTokens", poolID)
	if err != nil {
		return nil, nil, err
	}
	if len(out) < 2 {
		return nil, nil, fmt.Errorf("getPoolTokens: unexpected result arity %d", len(out))
	}
	tokens, ok := out[0].([]common.Address)
	if !ok {
		return nil, nil, fmt.Errorf("getPoolTokens: unexpected token list type %T", out[0])
	}
	balances, ok := out[1].([]*big.Int)
	if !ok || len(balances) != len(tokens) {
		return nil, nil, fmt.Errorf("getPoolTokens: unexpected balance list %T", out[1])
	}

	var baseReserves, bondReserves *big.Int
	for i, token := range tokens {
		switch token {
		case baseAsset:
			baseReserves = balances[i]
		case bondAsset:
			bondReserves = balances[i]
		}
	}
	if baseReserves == nil || bondReserves == nil {
		return nil, nil, ErrAssetNotInPool
	}
	return baseReserves, bondReserves, nil
}

func (s *QuoteService) callAt(ctx context.Context, to common.Address, contract *gethabi.ABI, blockNum *big.Int, method string, args ...any) ([]any, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	res, err := s.ethereumClient.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, blockNum)
	if err != nil {
		return nil, fmt.Errorf("call %s (contract %s, block %s): %w",
			method, to.Hex(), blockNum.String(), err)
	}
	out, err := contract.Unpack(method, res)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return out, nil
}

func (s *QuoteService) callSingle(ctx context.Context, to common.Address, contract *gethabi.ABI, blockNum *big.Int, method string) (any, error) {
	out, err := s.callAt(ctx, to, contract, blockNum, method)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%s: unexpected result arity %d", method, len(out))
	}
	return out[0], nil
}

func (s *QuoteService) callAddress(ctx context.Context, to common.Address, contract *gethabi.ABI, blockNum *big.Int, method string) (common.Address, error) {
	out, err := s.callSingle(ctx, to, contract, blockNum, method)
	if err != nil {
		return common.Address{}, err
	}
	v, ok := out.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%s: unexpected result type %T", method, out)
	}
	return v, nil
}

func (s *QuoteService) callBytes32(ctx context.Context, to common.Address, contract *gethabi.ABI, blockNum *big.Int, method string) ([32]byte, error) {
	out, err := s.callSingle(ctx, to, contract, blockNum, method)
	if err != nil {
		return [32]byte{}, err
	}
	v, ok := out.([32]byte)
	if !ok {
		return [32]byte{}, fmt.Errorf("%s: unexpected result type %T", method, out)
	}
	return v, nil
}

func (s *QuoteService) callUint256(ctx context.Context, to common.Address, contract *gethabi.ABI, blockNum *big.Int, method string) (*big.Int, error) {
	out, err := s.callSingle(ctx, to, contract, blockNum, method)
	if err != nil {
		return nil, err
	}
	v, ok := out.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", method, out)
	}
	return v, nil
}

func (s *QuoteService) callUint8(ctx context.Context, to common.Address, contract *gethabi.ABI, blockNum *big.Int, method string) (uint8, error) {
	out, err := s.callSingle(ctx, to, contract, blockNum, method)
	if err != nil {
		return 0, err
	}
	v, ok := out.(uint8)
	if !ok {
		return 0, fmt.Errorf("%s: unexpected result type %T", method, out)
	}
	return v, nil
}
