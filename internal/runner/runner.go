package runner

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/faucetlab/faucet-claimer/internal/chain"
	"github.com/faucetlab/faucet-claimer/internal/claimcore"
	"github.com/faucetlab/faucet-claimer/internal/config"
	"github.com/faucetlab/faucet-claimer/internal/walletdb"
)

// Pass executes one full claim pass: open the store, verify the endpoint,
// then sweep every wallet through the claim executor. Only store,
// connectivity and contract configuration problems abort the pass;
// per-wallet failures are folded into the returned stats.
func Pass(ctx context.Context, cfg config.Settings, log *logrus.Logger) (claimcore.RunStats, error) {
	store, err := walletdb.Open(cfg.DBPath)
	if err != nil {
		return claimcore.RunStats{}, err
	}
	defer store.Close()

	if n, err := store.Count(ctx); err == nil {
		log.Infof("wallet store: %d wallets (%s)", n, cfg.DBPath)
	}

	client, err := chain.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return claimcore.RunStats{}, err
	}
	defer client.Close()

	health, err := client.CheckHealth(ctx)
	if err != nil {
		return claimcore.RunStats{}, err
	}
	log.Infof("connected to network - chain id: %s, latest block: %d", health.ChainID, health.BlockNumber)
	if health.ChainID.Int64() != cfg.ChainID {
		log.Warnf("expected chain id %d, got %s", cfg.ChainID, health.ChainID)
	}

	builder := newBuilder(cfg, log)
	if !builder.Configured() {
		log.Error("contract not initialized - cannot process claims")
		return claimcore.RunStats{}, claimcore.ErrContractNotConfigured
	}

	exec := claimcore.NewExecutor(client, builder, cfg.ReceiptTimeout, log)
	driver := claimcore.NewDriver(store.Cursor(), exec, cfg.BatchSize, cfg.ClaimDelay, cfg.MaxWallets, log)
	return driver.Run(ctx)
}

// newBuilder sets up the claim transaction builder. Missing contract
// address or ABI file is a warning here; the pass then aborts before any
// claim is attempted.
func newBuilder(cfg config.Settings, log *logrus.Logger) *claimcore.Builder {
	chainID := big.NewInt(cfg.ChainID)
	if strings.TrimSpace(cfg.ContractAddress) == "" {
		log.Warn("contract address not provided")
		return claimcore.NewUnconfiguredBuilder(chainID)
	}
	contractABI, err := claimcore.LoadABI(cfg.ABIPath)
	if err != nil {
		log.Warnf("abi file not usable (%s): %v", cfg.ABIPath, err)
		return claimcore.NewUnconfiguredBuilder(chainID)
	}
	b, err := claimcore.NewBuilder(common.HexToAddress(cfg.ContractAddress), contractABI,
		cfg.GasLimit, cfg.GasPriceGwei, chainID)
	if err != nil {
		log.Warnf("contract setup failed: %v", err)
		return claimcore.NewUnconfiguredBuilder(chainID)
	}
	log.Infof("contract loaded: %s", cfg.ContractAddress)
	return b
}
