package claimcore

// OutcomeKind classifies the result of one claim attempt. Every wallet gets
// exactly one outcome per pass; the executor never retries internally.
type OutcomeKind int

const (
	// OutcomeConfirmed: receipt observed with success status.
	OutcomeConfirmed OutcomeKind = iota
	// OutcomeSubmittedUnconfirmed: the transaction was accepted by the
	// network but no receipt appeared within the timeout. Counted as a
	// success: broadcast acceptance, not execution confirmation, is the
	// at-least-once guarantee this system offers.
	OutcomeSubmittedUnconfirmed
	// OutcomeOnChainRevert: receipt observed with failure status.
	OutcomeOnChainRevert
	// OutcomeBroadcastFailed: the node rejected the transaction before a
	// hash was obtained.
	OutcomeBroadcastFailed
	// OutcomeNonceUnavailable: the nonce query failed; nothing was
	// broadcast for this wallet.
	OutcomeNonceUnavailable
	// OutcomeContractUnavailable: no usable contract address/ABI.
	OutcomeContractUnavailable
	// OutcomeUnexpected: catch-all for failures the kinds above don't cover.
	OutcomeUnexpected
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeSubmittedUnconfirmed:
		return "submitted-unconfirmed"
	case OutcomeOnChainRevert:
		return "on-chain-revert"
	case OutcomeBroadcastFailed:
		return "broadcast-failed"
	case OutcomeNonceUnavailable:
		return "nonce-unavailable"
	case OutcomeContractUnavailable:
		return "contract-unavailable"
	case OutcomeUnexpected:
		return "unexpected-error"
	default:
		return "unknown"
	}
}

// Success reports whether the outcome counts toward the succeeded tally.
func (k OutcomeKind) Success() bool {
	return k == OutcomeConfirmed || k == OutcomeSubmittedUnconfirmed
}

// Outcome is the result of one claim attempt for one wallet.
type Outcome struct {
	WalletID int64
	Address  string
	Kind     OutcomeKind
	TxHash   string
	GasUsed  uint64
	Err      string
}
