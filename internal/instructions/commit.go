package instructions

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/iqbalbaharum/pool-delegator/internal/config"
	"github.com/iqbalbaharum/pool-delegator/internal/types"
)

type CommitParams struct {
	Token        types.Token
	Pool         types.Pool
	Amount       uint64
	Owner        solana.PublicKey
	RentLamports uint64
}

// MakeCommitInstructions builds the four-instruction commit sequence for one
// (token, pool) pair: create the single-use holding account, initialize it
// for the token's mint, transfer the allocated amount from the owner's
// associated account, then approve the pool's delegate over the new account.
// A fresh keypair is generated per call; it must co-sign the transaction.
func MakeCommitInstructions(params *CommitParams) (*types.InstructionSet, error) {
	mint, err := solana.PublicKeyFromBase58(params.Token.Mint)
	if err != nil {
		return nil, fmt.Errorf("%w: token %s has no resolvable mint", types.ErrMissingMetadata, params.Token.ID)
	}

	tokenProgram, err := solana.PublicKeyFromBase58(params.Token.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("%w: token %s has no resolvable owning program", types.ErrMissingMetadata, params.Token.ID)
	}

	poolId, err := solana.PublicKeyFromBase58(params.Pool.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed pool id %q", types.ErrInvalidInput, params.Pool.ID)
	}

	newAccount := solana.NewWallet()

	createInstr, err := system.NewCreateAccountInstruction(
		params.RentLamports,
		uint64(config.TOKEN_ACCOUNT_SIZE),
		tokenProgram,
		params.Owner,
		newAccount.PublicKey()).ValidateAndBuild()

	if err != nil {
		return nil, err
	}

	initInstr, err := token.NewInitializeAccountInstruction(
		newAccount.PublicKey(),
		mint,
		params.Owner,
		solana.SysVarRentPubkey).ValidateAndBuild()

	if err != nil {
		return nil, err
	}

	sourceAccount, err := AssociatedHoldingAccount(params.Owner, mint)
	if err != nil {
		return nil, err
	}

	transferInstr, err := token.NewTransferCheckedInstruction(
		params.Amount,
		params.Token.Decimals,
		sourceAccount,
		mint,
		newAccount.PublicKey(),
		params.Owner,
		nil).ValidateAndBuild()

	if err != nil {
		return nil, err
	}

	delegate, err := DeriveDelegate(poolId)
	if err != nil {
		return nil, err
	}

	// Unlimited spending authority for the pool's delegate, matching the
	// consuming program's expectation. See DESIGN.md on the approval amount.
	approveInstr, err := token.NewApproveCheckedInstruction(
		math.MaxUint64,
		params.Token.Decimals,
		newAccount.PublicKey(),
		mint,
		delegate,
		params.Owner,
		nil).ValidateAndBuild()

	if err != nil {
		return nil, err
	}

	return &types.InstructionSet{
		TokenID:    params.Token.ID,
		PoolID:     params.Pool.ID,
		Amount:     params.Amount,
		NewAccount: newAccount,
		Instructions: []solana.Instruction{
			createInstr,
			initInstr,
			transferInstr,
			approveInstr,
		},
	}, nil
}

// DeriveDelegate resolves the spending delegate for a pool: the program
// derived address seeded by the pair_state tag and the pool identity under
// the approval program.
func DeriveDelegate(poolId solana.PublicKey) (solana.PublicKey, error) {
	delegate, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(config.PAIR_STATE_SEED), poolId.Bytes()},
		config.APPROVAL_PROGRAM,
	)

	if err != nil {
		return solana.PublicKey{}, err
	}

	return delegate, nil
}

// AssociatedHoldingAccount is the canonical token account for (owner, mint),
// the transfer source for every commit.
func AssociatedHoldingAccount(owner solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, error) {
	account, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, err
	}

	return account, nil
}
