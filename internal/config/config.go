package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults mirror the Arbitrum Sepolia faucet deployment this tool was
// written against.
const (
	DefaultRPCURL          = "https://sepolia-rollup.arbitrum.io/rpc"
	DefaultChainID         = 421614
	DefaultContractAddress = "0x1bA1526CF49Eb9ECcA86bDC015C4263300E21656"
	DefaultDBPath          = "wallets.db"
	DefaultABIPath         = "abi.json"
	DefaultStatePath       = "scheduler_stats.json"

	DefaultBatchSize     = 500
	DefaultClaimDelay    = 2 * time.Second
	DefaultGasLimit      = 100000
	DefaultGasPriceGwei  = 0.1
	DefaultIntervalHours = 24

	DefaultReceiptTimeout = 30 * time.Second
)

// Settings keeps all configuration options for both binaries.
// Naming mirrors the existing env keys so deployed .env files keep working.
type Settings struct {
	DBPath          string
	RPCURL          string
	ABIPath         string
	ContractAddress string
	ChainID         int64

	BatchSize    int
	ClaimDelay   time.Duration
	GasLimit     uint64
	GasPriceGwei float64
	MaxWallets   int // 0 means unlimited

	IntervalHours int
	StatePath     string
	LogDir        string

	ReceiptTimeout time.Duration
}

// Load reads settings from environment supporting both UPPER_CASE and
// lower_case keys, falling back to the defaults above.
func Load() Settings {
	get := func(keys []string, def string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				return v
			}
		}
		return def
	}
	getInt := func(keys []string, def int) int {
		s := get(keys, "")
		if s == "" {
			return def
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
		return def
	}
	getInt64 := func(keys []string, def int64) int64 {
		s := get(keys, "")
		if s == "" {
			return def
		}
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return n
		}
		return def
	}
	getUint64 := func(keys []string, def uint64) uint64 {
		s := get(keys, "")
		if s == "" {
			return def
		}
		if n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err == nil {
			return n
		}
		return def
	}
	getFloat := func(keys []string, def float64) float64 {
		s := get(keys, "")
		if s == "" {
			return def
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n
		}
		return def
	}

	st := Settings{}
	st.DBPath = get([]string{"db_path", "DB_PATH"}, DefaultDBPath)
	st.RPCURL = get([]string{"rpc_url", "RPC_URL"}, DefaultRPCURL)
	st.ABIPath = get([]string{"abi_path", "ABI_PATH"}, DefaultABIPath)
	st.ContractAddress = get([]string{"contract_address", "CONTRACT_ADDRESS"}, DefaultContractAddress)
	st.ChainID = getInt64([]string{"chain_id", "CHAIN_ID"}, DefaultChainID)

	st.BatchSize = getInt([]string{"batch_size", "BATCH_SIZE"}, DefaultBatchSize)
	delaySec := getFloat([]string{"claim_delay", "CLAIM_DELAY"}, DefaultClaimDelay.Seconds())
	st.ClaimDelay = time.Duration(delaySec * float64(time.Second))
	st.GasLimit = getUint64([]string{"gas_limit", "GAS_LIMIT"}, DefaultGasLimit)
	st.GasPriceGwei = getFloat([]string{"gas_price_gwei", "GAS_PRICE_GWEI"}, DefaultGasPriceGwei)
	st.MaxWallets = getInt([]string{"max_wallets", "MAX_WALLETS"}, 0)

	st.IntervalHours = getInt([]string{"interval_hours", "INTERVAL_HOURS"}, DefaultIntervalHours)
	st.StatePath = get([]string{"state_path", "STATE_PATH"}, DefaultStatePath)
	st.LogDir = get([]string{"log_dir", "LOG_DIR"}, ".")

	st.ReceiptTimeout = DefaultReceiptTimeout
	return st
}

// Validate rejects values that would make a pass abort half way through.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.RPCURL) == "" {
		return fmt.Errorf("rpc url is empty")
	}
	if s.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", s.BatchSize)
	}
	if s.ClaimDelay < 0 {
		return fmt.Errorf("claim delay must not be negative, got %s", s.ClaimDelay)
	}
	if s.GasLimit == 0 {
		return fmt.Errorf("gas limit must be positive")
	}
	if s.GasPriceGwei <= 0 {
		return fmt.Errorf("gas price must be positive, got %g gwei", s.GasPriceGwei)
	}
	if s.MaxWallets < 0 {
		return fmt.Errorf("max wallets must not be negative, got %d", s.MaxWallets)
	}
	if s.IntervalHours <= 0 {
		return fmt.Errorf("schedule interval must be positive, got %d hours", s.IntervalHours)
	}
	return nil
}
