package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrReceiptTimeout is returned by WaitReceipt when no receipt appeared
// within the caller's timeout. The transaction may still confirm later.
var ErrReceiptTimeout = errors.New("timed out waiting for transaction receipt")

const receiptPollInterval = time.Second

// Client is a thin typed wrapper around one JSON-RPC endpoint.
type Client struct {
	ec  *ethclient.Client
	url string
}

// Dial connects to the endpoint with keep-alives and sane timeouts,
// retrying transient failures with capped exponential backoff. Establishing
// the transport does not imply the node is healthy; see CheckHealth.
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	transport := &http.Transport{
		MaxIdleConns:       100,
		IdleConnTimeout:    90 * time.Second,
		DisableCompression: false,
	}
	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}

	var rpcClient *rpc.Client
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 15 * time.Second
	err := backoff.Retry(func() error {
		var err error
		rpcClient, err = rpc.DialOptions(ctx, rpcURL, rpc.WithHTTPClient(httpClient))
		return err
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return nil, fmt.Errorf("dial rpc %s: %w", rpcURL, err)
	}
	return &Client{ec: ethclient.NewClient(rpcClient), url: rpcURL}, nil
}

func (c *Client) Close() { c.ec.Close() }

func (c *Client) URL() string { return c.url }

// Health is the node state observed at startup.
type Health struct {
	ChainID     *big.Int
	BlockNumber uint64
}

// CheckHealth queries the chain id and latest block height in one go.
func (c *Client) CheckHealth(ctx context.Context) (Health, error) {
	chainID, err := c.ec.ChainID(ctx)
	if err != nil {
		return Health{}, fmt.Errorf("query chain id: %w", err)
	}
	block, err := c.ec.BlockNumber(ctx)
	if err != nil {
		return Health{}, fmt.Errorf("query block number: %w", err)
	}
	return Health{ChainID: chainID, BlockNumber: block}, nil
}

// PendingNonce returns the next nonce for addr as seen by the node's
// pending state. Errors propagate; callers must not guess a nonce.
func (c *Client) PendingNonce(ctx context.Context, addr common.Address) (uint64, error) {
	nonce, err := c.ec.PendingNonceAt(ctx, addr)
	if err != nil {
		return 0, fmt.Errorf("nonce(%s): %w", addr.Hex(), err)
	}
	return nonce, nil
}

// Broadcast submits a signed transaction and returns its hash.
func (c *Client) Broadcast(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	if err := c.ec.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, fmt.Errorf("send transaction: %w", err)
	}
	return tx.Hash(), nil
}

// WaitReceipt polls for the receipt of hash until it appears or timeout
// elapses. The wait is detached from the caller's cancellation: once a
// transaction is on the wire its fate should be observed up to the timeout
// rather than abandoned mid-flight on shutdown.
func (c *Client) WaitReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.ec.TransactionReceipt(waitCtx, hash)
		if err == nil {
			return receipt, nil
		}
		// Not found yet, or a transient RPC hiccup; keep polling until the
		// deadline either way.
		select {
		case <-waitCtx.Done():
			return nil, fmt.Errorf("%w: %s", ErrReceiptTimeout, hash.Hex())
		case <-ticker.C:
		}
	}
}
