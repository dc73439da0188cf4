package engine

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/pool-delegator/internal/types"
)

// Assemble packages an instruction set into a signable transaction: fee payer
// and recent blockhash attached, single-use account co-signature applied.
// The wallet signature is added later, in one batch pass over all plans.
func Assemble(set *types.InstructionSet, feePayer solana.PublicKey, recent solana.Hash) (*types.TransactionPlan, error) {
	tx, err := solana.NewTransaction(
		set.Instructions,
		recent,
		solana.TransactionPayer(feePayer),
	)

	if err != nil {
		return nil, err
	}

	_, err = tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
		if set.NewAccount.PublicKey().Equals(key) {
			return &set.NewAccount.PrivateKey
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &types.TransactionPlan{
		TokenID:    set.TokenID,
		PoolID:     set.PoolID,
		Amount:     set.Amount,
		FeePayer:   feePayer,
		NewAccount: set.NewAccount,
		Tx:         tx,
	}, nil
}
