package types

import "github.com/gagliardetto/solana-go"

type AllocationEntry struct {
	Pool   Pool
	Amount uint64
}

// AllocationPlan is the per-token split: one entry per pool referencing the
// token's mint, each entry carrying floor(balance / len(entries)).
type AllocationPlan struct {
	Token   Token
	Entries []AllocationEntry
}

// InstructionSet is the ordered commit sequence for one (token, pool) pair:
// create account, initialize account, transfer, approve. Later instructions
// depend on the account created by the first, so order is load-bearing.
type InstructionSet struct {
	TokenID      string
	PoolID       string
	Amount       uint64
	NewAccount   *solana.Wallet
	Instructions []solana.Instruction
}

// TransactionPlan is one assembled, not-yet-wallet-signed transaction for one
// (token, pool) pair. NewAccount holds the single-use keypair until the plan
// has been broadcast, after which the private material is dropped.
type TransactionPlan struct {
	TokenID    string
	PoolID     string
	Amount     uint64
	FeePayer   solana.PublicKey
	NewAccount *solana.Wallet
	Tx         *solana.Transaction
}

// DiscardEphemeral drops the single-use private key once the plan is spent.
func (p *TransactionPlan) DiscardEphemeral() {
	p.NewAccount = nil
}

// PairFailure records a planning or building error scoped to a single
// (token, pool) pair. It never aborts sibling pairs.
type PairFailure struct {
	TokenID string
	PoolID  string
	Err     error
}
