package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/faucetlab/faucet-claimer/internal/claimcore"
	"github.com/faucetlab/faucet-claimer/internal/config"
	"github.com/faucetlab/faucet-claimer/internal/logging"
	"github.com/faucetlab/faucet-claimer/internal/runner"
	"github.com/faucetlab/faucet-claimer/internal/scheduler"
)

func main() {
	_ = godotenv.Load()
	defaults := config.Load()

	app := &cli.App{
		Name:  "claimd",
		Usage: "run faucet claim passes on a recurring schedule",
		Flags: daemonFlags(defaults),
		Action: func(c *cli.Context) error {
			return run(c, defaults)
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func daemonFlags(d config.Settings) []cli.Flag {
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
		&cli.IntFlag{Name: "max-wallets", Value: d.MaxWallets, Usage: "maximum wallets per run (0 = all)"},
		&cli.StringFlag{Name: "log-dir", Value: d.LogDir, Usage: "directory for per-run log files"},
		&cli.IntFlag{Name: "interval-hours", Value: d.IntervalHours, Usage: "hours between runs"},
		&cli.StringFlag{Name: "state-file", Value: d.StatePath, Usage: "path to persisted scheduler state"},
		&cli.BoolFlag{Name: "run-now", Usage: "run one pass immediately regardless of schedule"},
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
	cfg.IntervalHours = c.Int("interval-hours")
	cfg.StatePath = c.String("state-file")
	return cfg
}

func run(c *cli.Context, defaults config.Settings) error {
	cfg := settingsFromCLI(c, defaults)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, logPath, err := logging.New("scheduler", cfg.LogDir)
	if err != nil {
		return err
	}
	log.Infof("faucet scheduler initialized - log file: %s", logPath)
	log.Infof("schedule interval: %d hours", cfg.IntervalHours)
	log.Infof("contract address: %s", cfg.ContractAddress)
	log.Infof("batch size: %d, delay: %s", cfg.BatchSize, cfg.ClaimDelay)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pass := func(ctx context.Context) (claimcore.RunStats, error) {
		return runner.Pass(ctx, cfg, log)
	}
	sched := scheduler.New(cfg.StatePath, time.Duration(cfg.IntervalHours)*time.Hour, pass, log)
	if c.Bool("run-now") {
		sched.ForceNextRun()
	}
	return sched.Run(ctx)
}
