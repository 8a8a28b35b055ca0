package claimcore

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"

	"github.com/faucetlab/faucet-claimer/internal/chain"
	"github.com/faucetlab/faucet-claimer/internal/walletdb"
)

// ChainBackend is the slice of the chain client the executor needs.
type ChainBackend interface {
	PendingNonce(ctx context.Context, addr common.Address) (uint64, error)
	Broadcast(ctx context.Context, tx *types.Transaction) (common.Hash, error)
	WaitReceipt(ctx context.Context, hash common.Hash, timeout time.Duration) (*types.Receipt, error)
}

// Executor runs one claim attempt per wallet: nonce, build, sign,
// broadcast, await receipt, classify.
type Executor struct {
	backend        ChainBackend
	builder        *Builder
	receiptTimeout time.Duration
	log            *logrus.Logger
}

func NewExecutor(backend ChainBackend, builder *Builder, receiptTimeout time.Duration, log *logrus.Logger) *Executor {
	return &Executor{
		backend:        backend,
		builder:        builder,
		receiptTimeout: receiptTimeout,
		log:            log,
	}
}

// Claim performs exactly one on-chain attempt for w and classifies the
// result. It never returns an error: every failure mode folds into the
// outcome so one bad wallet cannot abort the pass.
func (e *Executor) Claim(ctx context.Context, w walletdb.Wallet) Outcome {
	out := Outcome{WalletID: w.ID, Address: w.Address}
	addr := common.HexToAddress(w.Address)

	nonce, err := e.backend.PendingNonce(ctx, addr)
	if err != nil {
		// A failed lookup must not degrade to nonce 0; on a non-fresh
		// address that would broadcast a doomed transaction.
		out.Kind = OutcomeNonceUnavailable
		out.Err = err.Error()
		e.log.Errorf("nonce lookup failed for %s: %v", w.Address, err)
		return out
	}

	tx, err := e.builder.Build(nonce)
	if err != nil {
		if errors.Is(err, ErrContractNotConfigured) {
			out.Kind = OutcomeContractUnavailable
		} else {
			out.Kind = OutcomeUnexpected
		}
		out.Err = err.Error()
		e.log.Errorf("build claim for %s: %v", w.Address, err)
		return out
	}

	signed, err := SignClaim(tx, w.PrivateKey, e.builder.ChainID())
	if err != nil {
		out.Kind = OutcomeUnexpected
		out.Err = err.Error()
		e.log.Errorf("sign claim for %s: %v", w.Address, err)
		return out
	}

	hash, err := e.backend.Broadcast(ctx, signed)
	if err != nil {
		out.Kind = OutcomeBroadcastFailed
		out.Err = err.Error()
		e.log.Errorf("broadcast claim for %s: %v", w.Address, err)
		return out
	}
	out.TxHash = hash.Hex()
	e.log.Infof("transaction sent: %s (wallet %s, nonce %d)", out.TxHash, w.Address, nonce)

	receipt, err := e.backend.WaitReceipt(ctx, hash, e.receiptTimeout)
	if err != nil {
		if errors.Is(err, chain.ErrReceiptTimeout) {
			// Accepted by the network but unconfirmed within the window.
			// Counted as a success: the claim was submitted once and may
			// still land.
			out.Kind = OutcomeSubmittedUnconfirmed
			out.Err = "receipt timeout (transaction may still succeed)"
			e.log.Warnf("receipt timeout for %s: %s", w.Address, out.TxHash)
			return out
		}
		out.Kind = OutcomeUnexpected
		out.Err = err.Error()
		e.log.Errorf("await receipt for %s: %v", w.Address, err)
		return out
	}

	if receipt.Status == types.ReceiptStatusSuccessful {
		out.Kind = OutcomeConfirmed
		out.GasUsed = receipt.GasUsed
		e.log.Infof("claim confirmed for %s - tx: %s gas: %d", w.Address, out.TxHash, out.GasUsed)
	} else {
		out.Kind = OutcomeOnChainRevert
		out.Err = "transaction failed (status: 0)"
		e.log.Errorf("claim reverted for %s - tx: %s", w.Address, out.TxHash)
	}
	return out
}
