package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("client")

// Commitment is used for every read, preflight and blockhash request.
// Processed returns as soon as one node has seen the transaction: a read right
// after a write may not reflect it.
const Commitment = rpc.CommitmentProcessed

// ErrAccountNotFound is returned when the requested account does not exist
var ErrAccountNotFound = errors.New("account not found")

// AccountData is the raw state of an on-chain account
type AccountData struct {
	Address  solana.PublicKey
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

// SolanaClient is a client for working with Solana RPC
type SolanaClient struct {
	rpcClient *rpc.Client
	rpcURL    string
}

// NewSolanaClient creates a new Solana client for the given cluster endpoint.
func NewSolanaClient(rpcURL string) *SolanaClient {
	return &SolanaClient{
		rpcClient: rpc.New(rpcURL),
		rpcURL:    rpcURL,
	}
}

// RPCURL returns the cluster endpoint
func (c *SolanaClient) RPCURL() string {
	return c.rpcURL
}

// GetAccountData fetches the account at address.
// A missing account is reported as ErrAccountNotFound, anything else is a transport error.
func (c *SolanaClient) GetAccountData(ctx context.Context, address solana.PublicKey) (*AccountData, error) {
	out, err := c.rpcClient.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: Commitment,
	})
	if err != nil {
		if isAccountNotFoundError(err) {
			return nil, fmt.Errorf("%s: %w", address, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("%s: %w", address, ErrAccountNotFound)
	}

	return &AccountData{
		Address:  address,
		Owner:    out.Value.Owner,
		Lamports: out.Value.Lamports,
		Data:     out.Value.Data.GetBinary(),
	}, nil
}

// LatestBlockhash returns a recent blockhash for building transactions
func (c *SolanaClient) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	recent, err := c.rpcClient.GetLatestBlockhash(ctx, Commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	return recent.Value.Blockhash, nil
}

// SendTransaction submits a fully signed transaction.
// It returns once the node accepts it; no confirmation is awaited.
func (c *SolanaClient) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false, // Transaction validation before node
			PreflightCommitment: Commitment,
		},
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	log.Debugw("transaction sent", "signature", sig.String())
	return sig, nil
}

// GetBalance gets SOL balance in lamports
func (c *SolanaClient) GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	balance, err := c.rpcClient.GetBalance(ctx, address, Commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to get SOL balance: %w", err)
	}
	return balance.Value, nil
}

// isAccountNotFoundError checks if error indicates that the account doesn't exist.
// A bare "not found" is not enough: an HTTP 404 from a wrong endpoint says that too.
func isAccountNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, rpc.ErrNotFound) {
		return true
	}
	return strings.Contains(err.Error(), "could not find account")
}
