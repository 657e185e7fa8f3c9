// Package eth dials the Ethereum JSON-RPC endpoint pool state is read from.
package eth

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

const dialTimeout = 15 * time.Second

func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	return ethclient.DialContext(ctx, url)
}
