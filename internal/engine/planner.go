package engine

import (
	"fmt"
	"math/big"

	"github.com/iqbalbaharum/pool-delegator/internal/types"
)

// Plan splits a token's held balance equally across every pool referencing
// its mint, floor division. A token with no matching pools yields an empty
// plan, not an error. The remainder (balance mod pool count) stays
// unallocated, so the entry amounts never sum above the balance.
func Plan(token types.Token, pools []types.Pool) (types.AllocationPlan, error) {
	plan := types.AllocationPlan{Token: token}

	balance, ok := new(big.Int).SetString(token.Balance, 10)
	if !ok || balance.Sign() < 0 {
		return plan, fmt.Errorf("%w: token %s balance %q is not a non-negative integer", types.ErrInvalidInput, token.ID, token.Balance)
	}

	var matching []types.Pool
	for i := range pools {
		if pools[i].References(token.Mint) {
			matching = append(matching, pools[i])
		}
	}

	if len(matching) == 0 {
		return plan, nil
	}

	share := new(big.Int).Quo(balance, big.NewInt(int64(len(matching))))
	if !share.IsUint64() {
		return plan, fmt.Errorf("%w: token %s per-pool share %s overflows uint64", types.ErrInvalidInput, token.ID, share)
	}

	amount := share.Uint64()
	for _, pool := range matching {
		plan.Entries = append(plan.Entries, types.AllocationEntry{
			Pool:   pool,
			Amount: amount,
		})
	}

	return plan, nil
}
