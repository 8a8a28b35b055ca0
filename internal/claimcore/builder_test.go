package claimcore

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

const faucetABIJSON = `[{"inputs":[],"name":"requestTokens","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

func testABI(t *testing.T) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(faucetABIJSON))
	require.NoError(t, err)
	return parsed
}

func TestGweiToWei(t *testing.T) {
	require.Equal(t, big.NewInt(100_000_000), GweiToWei(0.1))
	require.Equal(t, big.NewInt(1_000_000_000), GweiToWei(1))
	require.Equal(t, big.NewInt(2_500_000_000), GweiToWei(2.5))
}

func TestBuilderBuild(t *testing.T) {
	contract := common.HexToAddress("0x1bA1526CF49Eb9ECcA86bDC015C4263300E21656")
	b, err := NewBuilder(contract, testABI(t), 100000, 0.1, big.NewInt(421614))
	require.NoError(t, err)
	require.True(t, b.Configured())

	tx, err := b.Build(7)
	require.NoError(t, err)
	require.Equal(t, uint64(7), tx.Nonce())
	require.Equal(t, uint64(100000), tx.Gas())
	require.Equal(t, big.NewInt(100_000_000), tx.GasPrice())
	require.Equal(t, contract, *tx.To())
	require.Zero(t, tx.Value().Sign())

	// Zero-argument call data is just the 4-byte selector.
	sig := gethcrypto.Keccak256([]byte("requestTokens()"))[:4]
	require.Equal(t, sig, tx.Data())
}

func TestBuilderIsPureInNonce(t *testing.T) {
	b, err := NewBuilder(common.Address{}, testABI(t), 100000, 0.1, big.NewInt(421614))
	require.NoError(t, err)

	tx1, err := b.Build(3)
	require.NoError(t, err)
	tx2, err := b.Build(3)
	require.NoError(t, err)
	require.Equal(t, tx1.Hash(), tx2.Hash())
}

func TestUnconfiguredBuilder(t *testing.T) {
	b := NewUnconfiguredBuilder(big.NewInt(421614))
	require.False(t, b.Configured())
	_, err := b.Build(0)
	require.ErrorIs(t, err, ErrContractNotConfigured)
}

func TestLoadABI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abi.json")
	require.NoError(t, os.WriteFile(path, []byte(faucetABIJSON), 0o644))

	parsed, err := LoadABI(path)
	require.NoError(t, err)
	_, ok := parsed.Methods[ClaimMethod]
	require.True(t, ok)

	_, err = LoadABI(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestSignClaimRecoversSender(t *testing.T) {
	key, err := gethcrypto.GenerateKey()
	require.NoError(t, err)
	keyHex := common.Bytes2Hex(gethcrypto.FromECDSA(key))
	want := gethcrypto.PubkeyToAddress(key.PublicKey)

	chainID := big.NewInt(421614)
	b, err := NewBuilder(common.Address{}, testABI(t), 100000, 0.1, chainID)
	require.NoError(t, err)
	tx, err := b.Build(0)
	require.NoError(t, err)

	signed, err := SignClaim(tx, "0x"+keyHex, chainID)
	require.NoError(t, err)

	from, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	require.Equal(t, want, from)
}

func TestSignClaimRejectsBadKey(t *testing.T) {
	chainID := big.NewInt(421614)
	b, err := NewBuilder(common.Address{}, testABI(t), 100000, 0.1, chainID)
	require.NoError(t, err)
	tx, err := b.Build(0)
	require.NoError(t, err)

	_, err = SignClaim(tx, "", chainID)
	require.Error(t, err)
	_, err = SignClaim(tx, "zz", chainID)
	require.Error(t, err)
}
