// Package domain defines the on-chain transaction model for wallet
// operations against the NEURON token and the BountyArena contract.
package domain

import (
	"math/big"
	"time"
)

// TxStatus tracks a submitted transaction through its lifecycle.
type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// TxResult is the outcome of one submitted transaction.
type TxResult struct {
	Hash        string
	Status      TxStatus
	BlockNumber uint64
	GasUsed     uint64
	SubmittedAt time.Time
	// Error holds the revert or polling failure, empty on success.
	Error string
}

// Confirmed reports whether the transaction was mined successfully.
func (r TxResult) Confirmed() bool {
	return r.Status == TxConfirmed
}

// CreateBountyParams holds the arguments for BountyArena.createBounty.
// Reward is in base token units.
type CreateBountyParams struct {
	QuestionHash [32]byte
	Category     string
	Difficulty   uint8
	Reward       *big.Int
	MinRating    *big.Int
	Duration     time.Duration
}

// Allowance is the spendable budget one address granted another.
type Allowance struct {
	Owner   string
	Spender string
	Amount  *big.Int
}

// Covers reports whether the allowance is enough for the given spend.
func (a Allowance) Covers(amount *big.Int) bool {
	if a.Amount == nil || amount == nil {
		return false
	}
	return a.Amount.Cmp(amount) >= 0
}
