package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/pool-delegator/internal/types"
)

// Submit requests one batched signature pass from the signer, then broadcasts
// the plans sequentially in the given order. A declined signature aborts the
// whole batch before any broadcast. Broadcast failures are independent: a
// rejected plan is recorded and its siblings are still attempted. Each plan's
// single-use key is discarded once its broadcast attempt is done; an aborted
// batch discards every key up front.
func (e *Engine) Submit(ctx context.Context, plans []*types.TransactionPlan, signer Signer) ([]types.SubmissionResult, error) {
	if len(plans) == 0 {
		return nil, nil
	}

	txs := make([]*solana.Transaction, len(plans))
	for i, plan := range plans {
		txs[i] = plan.Tx
	}

	signed, err := signer.SignAll(ctx, txs)
	if err != nil {
		discardEphemerals(plans)
		return nil, fmt.Errorf("%w: %v", types.ErrSigningDeclined, err)
	}

	if len(signed) != len(plans) {
		discardEphemerals(plans)
		return nil, fmt.Errorf("%w: signer returned %d transactions for %d plans", types.ErrSigningDeclined, len(signed), len(plans))
	}

	results := make([]types.SubmissionResult, 0, len(plans))

	for i, plan := range plans {
		result := types.SubmissionResult{
			TokenID:   plan.TokenID,
			PoolID:    plan.PoolID,
			Timestamp: time.Now().Unix(),
		}

		sig, err := e.broadcaster.SendTransaction(ctx, signed[i])
		if err != nil {
			result.Error = classifyBroadcastError(err).Error()
		} else {
			result.Signature = sig.String()
		}

		plan.DiscardEphemeral()
		results = append(results, result)
	}

	return results, nil
}

// Single-use keys live exactly as long as the batch. An aborted batch is
// spent too, so the keys go with it.
func discardEphemerals(plans []*types.TransactionPlan) {
	for _, plan := range plans {
		plan.DiscardEphemeral()
	}
}

func classifyBroadcastError(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "blockhash") {
		return fmt.Errorf("%w: %v", types.ErrStaleCheckpoint, err)
	}
	return fmt.Errorf("%w: %v", types.ErrSubmissionRejected, err)
}
