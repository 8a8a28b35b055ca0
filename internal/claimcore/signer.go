package claimcore

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SignClaim signs tx with the wallet's private key. The key is parsed,
// used, and dropped; it is never logged or retained anywhere else.
func SignClaim(tx *types.Transaction, privateKeyHex string, chainID *big.Int) (*types.Transaction, error) {
	h := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if h == "" {
		return nil, fmt.Errorf("private key is empty")
	}
	prv, err := gethcrypto.HexToECDSA(h)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	signer := types.LatestSignerForChainID(chainID)
	signed, err := types.SignTx(tx, signer, prv)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	return signed, nil
}
