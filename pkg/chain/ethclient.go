package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EthClient is the slice of the Ethereum JSON-RPC surface the payment
// verifier needs, behind an interface so tests can fake the chain.
type EthClient interface {
	// TransactionByHash returns the transaction and whether it is still pending
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)

	// TransactionReceipt returns the receipt of a mined transaction
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)

	// BlockNumber returns the current head block number
	BlockNumber(ctx context.Context) (uint64, error)

	// ChainID returns the chain id used for sender recovery
	ChainID(ctx context.Context) (*big.Int, error)

	// Close closes the connection
	Close()
}

// Dial connects to an RPC endpoint and returns it as an EthClient.
func Dial(ctx context.Context, rawurl string) (EthClient, error) {
	return ethclient.DialContext(ctx, rawurl)
}
