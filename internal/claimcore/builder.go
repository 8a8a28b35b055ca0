package claimcore

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
)

// ErrContractNotConfigured means no contract address/ABI was supplied at
// startup; every build fails with it until the operator fixes the config.
var ErrContractNotConfigured = errors.New("faucet contract not configured")

// ClaimMethod is the zero-argument faucet method every claim invokes.
const ClaimMethod = "requestTokens"

// LoadABI reads a JSON contract interface description from disk.
func LoadABI(path string) (abi.ABI, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("read abi file: %w", err)
	}
	parsed, err := abi.JSON(strings.NewReader(string(raw)))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse abi: %w", err)
	}
	return parsed, nil
}

// Builder constructs unsigned claim transactions. The calldata and the wei
// gas price are computed once at construction; Build is then a pure
// function of the nonce.
type Builder struct {
	contract   common.Address
	calldata   []byte
	gasLimit   uint64
	gasPrice   *big.Int
	chainID    *big.Int
	configured bool
}

// NewBuilder packs the claim method's calldata and fixes gas parameters.
func NewBuilder(contract common.Address, contractABI abi.ABI, gasLimit uint64, gasPriceGwei float64, chainID *big.Int) (*Builder, error) {
	calldata, err := contractABI.Pack(ClaimMethod)
	if err != nil {
		return nil, fmt.Errorf("pack %s calldata: %w", ClaimMethod, err)
	}
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, fmt.Errorf("chain id must be positive")
	}
	return &Builder{
		contract:   contract,
		calldata:   calldata,
		gasLimit:   gasLimit,
		gasPrice:   GweiToWei(gasPriceGwei),
		chainID:    new(big.Int).Set(chainID),
		configured: true,
	}, nil
}

// NewUnconfiguredBuilder returns a builder whose Build always fails with
// ErrContractNotConfigured. Used when the ABI file or contract address is
// missing so a pass aborts cleanly instead of panicking.
func NewUnconfiguredBuilder(chainID *big.Int) *Builder {
	return &Builder{chainID: chainID}
}

func (b *Builder) Configured() bool { return b.configured }

func (b *Builder) ChainID() *big.Int { return b.chainID }

func (b *Builder) GasPriceWei() *big.Int { return new(big.Int).Set(b.gasPrice) }

// Build returns the unsigned legacy transaction claiming for the given
// nonce. No dynamic fee logic: the configured gas price is used as-is.
func (b *Builder) Build(nonce uint64) (*types.Transaction, error) {
	if !b.configured {
		return nil, ErrContractNotConfigured
	}
	to := b.contract
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: new(big.Int).Set(b.gasPrice),
		Gas:      b.gasLimit,
		To:       &to,
		Value:    big.NewInt(0),
		Data:     b.calldata,
	}), nil
}

// GweiToWei converts a fractional gwei amount to wei, truncating sub-wei
// remainders.
func GweiToWei(gwei float64) *big.Int {
	f := new(big.Float).Mul(big.NewFloat(gwei), big.NewFloat(params.GWei))
	wei, _ := f.Int(nil)
	return wei
}
