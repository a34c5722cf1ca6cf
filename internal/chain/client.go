package chain

import (
	"context"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client wraps go-ethereum RPC and provides helper methods.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client
}

// rpcTransaction holds the fields read from eth_getTransactionByHash.
type rpcTransaction struct {
	Hash  string        `json:"hash"`
	Input hexutil.Bytes `json:"input"`
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	return NewClientWithHTTP(ctx, rpcURL, nil)
}

// NewClientWithHTTP creates a chain client that sends requests through httpClient.
func NewClientWithHTTP(ctx context.Context, rpcURL string, httpClient *http.Client) (*Client, error) {
	var opts []rpc.ClientOption
	if httpClient != nil {
		opts = append(opts, rpc.WithHTTPClient(httpClient))
	}
	rpcClient, err := rpc.DialOptions(ctx, rpcURL, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// GetChainID returns the chain ID.
func (c *Client) GetChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// TransactionInput returns the input data of a transaction.
func (c *Client) TransactionInput(ctx context.Context, hash string) ([]byte, bool, error) {
	var tx *rpcTransaction
	if err := c.rpcClient.CallContext(ctx, &tx, "eth_getTransactionByHash", hash); err != nil {
		return nil, false, err
	}
	if tx == nil {
		return nil, false, nil
	}
	return tx.Input, true, nil
}

// BatchTransactionInputs fetches the input data of every hash in one JSON-RPC
// batch. Unknown transactions yield a nil input.
func (c *Client) BatchTransactionInputs(ctx context.Context, hashes []string) ([][]byte, error) {
	if len(hashes) == 0 {
		return nil, nil
	}

	results := make([]*rpcTransaction, len(hashes))
	batch := make([]rpc.BatchElem, len(hashes))
	for i, hash := range hashes {
		batch[i] = rpc.BatchElem{
			Method: "eth_getTransactionByHash",
			Args:   []interface{}{hash},
			Result: &results[i],
		}
	}

	if err := c.rpcClient.BatchCallContext(ctx, batch); err != nil {
		return nil, err
	}

	inputs := make([][]byte, len(hashes))
	for i, elem := range batch {
		if elem.Error != nil {
			return nil, fmt.Errorf("eth_getTransactionByHash %s: %w", hashes[i], elem.Error)
		}
		if results[i] != nil {
			inputs[i] = results[i].Input
		}
	}
	return inputs, nil
}
