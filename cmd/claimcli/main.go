package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/faucetlab/faucet-claimer/internal/config"
	"github.com/faucetlab/faucet-claimer/internal/logging"
	"github.com/faucetlab/faucet-claimer/internal/runner"
)

func main() {
	_ = godotenv.Load()
	defaults := config.Load()

	app := &cli.App{
		Name:  "claimcli",
		Usage: "run one faucet claim pass over the wallet store",
		Flags: claimFlags(defaults),
		Action: func(c *cli.Context) error {
			return run(c, defaults)
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// claimFlags covers the per-pass surface shared with claimd. Defaults come
// from config.Load, which already honors env vars and .env.
func claimFlags(d config.Settings) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "db", Value: d.DBPath, Usage: "path to wallets database"},
		&cli.StringFlag{Name: "rpc", Value: d.RPCURL, Usage: "RPC endpoint URL"},
		&cli.StringFlag{Name: "abi", Value: d.ABIPath, Usage: "path to contract ABI file"},
		&cli.StringFlag{Name: "contract", Value: d.ContractAddress, Usage: "faucet contract address"},
		&cli.Int64Flag{Name: "chain-id", Value: d.ChainID, Usage: "expected chain id"},
		&cli.IntFlag{Name: "batch-size", Value: d.BatchSize, Usage: "wallets per store page"},
		&cli.Float64Flag{Name: "delay", Value: d.ClaimDelay.Seconds(), Usage: "delay between claims (seconds)"},
		&cli.Uint64Flag{Name: "gas-limit", Value: d.GasLimit, Usage: "gas limit for claim transactions"},
		&cli.Float64Flag{Name: "gas-price-gwei", Value: d.GasPriceGwei, Usage: "gas price in gwei"},
		&cli.IntFlag{Name: "max-wallets", Value: d.MaxWallets, Usage: "maximum wallets per pass (0 = all)"},
		&cli.StringFlag{Name: "log-dir", Value: d.LogDir, Usage: "directory for per-run log files"},
	}
}

func settingsFromCLI(c *cli.Context, base config.Settings) config.Settings {
	cfg := base
	cfg.DBPath = c.String("db")
	cfg.RPCURL = c.String("rpc")
	cfg.ABIPath = c.String("abi")
	cfg.ContractAddress = c.String("contract")
	cfg.ChainID = c.Int64("chain-id")
	cfg.BatchSize = c.Int("batch-size")
	cfg.ClaimDelay = time.Duration(c.Float64("delay") * float64(time.Second))
	cfg.GasLimit = c.Uint64("gas-limit")
	cfg.GasPriceGwei = c.Float64("gas-price-gwei")
	cfg.MaxWallets = c.Int("max-wallets")
	cfg.LogDir = c.String("log-dir")
	return cfg
}

func run(c *cli.Context, defaults config.Settings) error {
	cfg := settingsFromCLI(c, defaults)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, logPath, err := logging.New("faucet_claims", cfg.LogDir)
	if err != nil {
		return err
	}
	log.Infof("faucet claimer initialized - log file: %s", logPath)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = runner.Pass(ctx, cfg, log)
	if errors.Is(err, context.Canceled) {
		// Interrupted by the operator; the summary has been logged.
		return nil
	}
	return err
}
