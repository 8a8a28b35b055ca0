package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	st := Load()

	require.Equal(t, DefaultDBPath, st.DBPath)
	require.Equal(t, DefaultRPCURL, st.RPCURL)
	require.Equal(t, int64(DefaultChainID), st.ChainID)
	require.Equal(t, DefaultBatchSize, st.BatchSize)
	require.Equal(t, 2*time.Second, st.ClaimDelay)
	require.Equal(t, uint64(DefaultGasLimit), st.GasLimit)
	require.Equal(t, DefaultGasPriceGwei, st.GasPriceGwei)
	require.Equal(t, 0, st.MaxWallets)
	require.Equal(t, DefaultIntervalHours, st.IntervalHours)
	require.NoError(t, st.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("batch_size", "25")
	t.Setenv("CLAIM_DELAY", "0.5")
	t.Setenv("MAX_WALLETS", "100")
	t.Setenv("CHAIN_ID", "11155111")

	st := Load()
	require.Equal(t, "/tmp/other.db", st.DBPath)
	require.Equal(t, 25, st.BatchSize)
	require.Equal(t, 500*time.Millisecond, st.ClaimDelay)
	require.Equal(t, 100, st.MaxWallets)
	require.Equal(t, int64(11155111), st.ChainID)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"empty rpc", func(s *Settings) { s.RPCURL = " " }},
		{"zero batch", func(s *Settings) { s.BatchSize = 0 }},
		{"negative delay", func(s *Settings) { s.ClaimDelay = -time.Second }},
		{"zero gas limit", func(s *Settings) { s.GasLimit = 0 }},
		{"zero gas price", func(s *Settings) { s.GasPriceGwei = 0 }},
		{"negative max wallets", func(s *Settings) { s.MaxWallets = -1 }},
		{"zero interval", func(s *Settings) { s.IntervalHours = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := Load()
			tc.mutate(&st)
			require.Error(t, st.Validate())
		})
	}
}
