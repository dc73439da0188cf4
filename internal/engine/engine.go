package engine

import (
	"context"
	"log"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/pool-delegator/internal/config"
	"github.com/iqbalbaharum/pool-delegator/internal/instructions"
	"github.com/iqbalbaharum/pool-delegator/internal/types"
)

// Chain supplies the two network reads assembly depends on. The blockhash is
// fetched immediately before each assembly because it expires; the rent
// minimum is stable for a fixed record size and fetched once per pass.
type Chain interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	MinimumRentBalance(ctx context.Context, space uint64) (uint64, error)
}

// Broadcaster submits one signed transaction and returns its signature.
type Broadcaster interface {
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Signer is the wallet capability: one batched signature pass over every
// plan. It may decline, which aborts the batch.
type Signer interface {
	SignAll(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error)
}

type Engine struct {
	chain       Chain
	broadcaster Broadcaster
}

func NewEngine(chain Chain, broadcaster Broadcaster) *Engine {
	return &Engine{
		chain:       chain,
		broadcaster: broadcaster,
	}
}

// PlanAndBuild runs the full planning pass over an immutable snapshot of
// tokens and pools: the selection narrows the token set, each selected token
// is split across its matching pools, and every (token, pool) pair becomes
// one assembled transaction plan. Pairs are processed as a deterministic
// ordered sequence, outer loop over the selection, inner loop over matching
// pools. A failing pair is reported and skipped; it never aborts siblings.
func (e *Engine) PlanAndBuild(ctx context.Context, owner solana.PublicKey, selected []string, tokens []types.Token, pools []types.Pool) ([]*types.TransactionPlan, []types.PairFailure, error) {
	byId := make(map[string]types.Token, len(tokens))
	for _, t := range tokens {
		byId[t.ID] = t
	}

	var (
		plans        []*types.TransactionPlan
		failures     []types.PairFailure
		rentLamports uint64
		rentFetched  bool
	)

	for _, id := range selected {
		token, exists := byId[id]
		if !exists {
			log.Printf("%s | not in inventory snapshot, skipped", id)
			continue
		}

		plan, err := Plan(token, pools)
		if err != nil {
			failures = append(failures, types.PairFailure{TokenID: token.ID, Err: err})
			continue
		}

		if len(plan.Entries) == 0 {
			continue
		}

		if !rentFetched {
			rent, err := e.chain.MinimumRentBalance(ctx, uint64(config.TOKEN_ACCOUNT_SIZE))
			if err != nil {
				return plans, failures, err
			}
			rentLamports = rent
			rentFetched = true
		}

		for _, entry := range plan.Entries {
			set, err := instructions.MakeCommitInstructions(&instructions.CommitParams{
				Token:        token,
				Pool:         entry.Pool,
				Amount:       entry.Amount,
				Owner:        owner,
				RentLamports: rentLamports,
			})

			if err != nil {
				failures = append(failures, types.PairFailure{TokenID: token.ID, PoolID: entry.Pool.ID, Err: err})
				continue
			}

			// Fetched per pair, right before assembly. A blockhash taken any
			// earlier risks expiring before submission.
			recent, err := e.chain.LatestBlockhash(ctx)
			if err != nil {
				failures = append(failures, types.PairFailure{TokenID: token.ID, PoolID: entry.Pool.ID, Err: err})
				continue
			}

			txPlan, err := Assemble(set, owner, recent)
			if err != nil {
				failures = append(failures, types.PairFailure{TokenID: token.ID, PoolID: entry.Pool.ID, Err: err})
				continue
			}

			plans = append(plans, txPlan)
		}
	}

	return plans, failures, nil
}
