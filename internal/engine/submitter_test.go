package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/pool-delegator/internal/types"
)

type stubSigner struct {
	decline bool
	short   bool
	calls   int
}

func (s *stubSigner) SignAll(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	s.calls++
	if s.decline {
		return nil, errors.New("user rejected the batch")
	}
	if s.short {
		return txs[:len(txs)-1], nil
	}
	return txs, nil
}

func buildPlans(t *testing.T, eng *Engine, poolCount int) []*types.TransactionPlan {
	t.Helper()

	token := testToken("tok-1", "900")
	var pools []types.Pool
	for i := 0; i < poolCount; i++ {
		pools = append(pools, poolFor(token.Mint, newMint()))
	}

	plans, failures, err := eng.PlanAndBuild(context.Background(), solana.NewWallet().PublicKey(), []string{"tok-1"}, []types.Token{token}, pools)
	if err != nil {
		t.Fatalf("PlanAndBuild failed: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %+v", failures)
	}
	if len(plans) != poolCount {
		t.Fatalf("expected %d plans, got %d", poolCount, len(plans))
	}

	return plans
}

func TestSubmit_DeclinedSigningAbortsBatch(t *testing.T) {
	broadcaster := &stubBroadcaster{}
	eng := testEngine(nil, broadcaster)
	plans := buildPlans(t, eng, 3)

	results, err := eng.Submit(context.Background(), plans, &stubSigner{decline: true})
	if !errors.Is(err, types.ErrSigningDeclined) {
		t.Fatalf("expected ErrSigningDeclined, got %v", err)
	}

	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}

	if len(broadcaster.sent) != 0 {
		t.Errorf("no broadcast should happen after a declined signing, got %d", len(broadcaster.sent))
	}

	for i, plan := range plans {
		if plan.NewAccount != nil {
			t.Errorf("plan %d kept its single-use private key past the aborted batch", i)
		}
	}
}

func TestSubmit_SignerCountMismatchAbortsBatch(t *testing.T) {
	broadcaster := &stubBroadcaster{}
	eng := testEngine(nil, broadcaster)
	plans := buildPlans(t, eng, 3)

	_, err := eng.Submit(context.Background(), plans, &stubSigner{short: true})
	if !errors.Is(err, types.ErrSigningDeclined) {
		t.Fatalf("expected ErrSigningDeclined, got %v", err)
	}

	if len(broadcaster.sent) != 0 {
		t.Errorf("no broadcast should happen on a signer count mismatch, got %d", len(broadcaster.sent))
	}

	for i, plan := range plans {
		if plan.NewAccount != nil {
			t.Errorf("plan %d kept its single-use private key past the aborted batch", i)
		}
	}
}

func TestSubmit_RejectionDoesNotAbortSiblings(t *testing.T) {
	broadcaster := &stubBroadcaster{
		failAt: map[int]error{1: errors.New("Transaction simulation failed")},
	}
	eng := testEngine(nil, broadcaster)
	plans := buildPlans(t, eng, 3)

	results, err := eng.Submit(context.Background(), plans, &stubSigner{})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if !results[0].Ok() || results[1].Ok() || !results[2].Ok() {
		t.Errorf("expected [ok, rejected, ok], got %+v", results)
	}

	if !strings.Contains(results[1].Error, types.ErrSubmissionRejected.Error()) {
		t.Errorf("expected rejection classified as submission rejected, got %q", results[1].Error)
	}

	if len(broadcaster.sent) != 3 {
		t.Errorf("all 3 plans should be attempted, got %d", len(broadcaster.sent))
	}

	if types.ClassifyBatch(results) != types.BATCH_PARTIAL {
		t.Errorf("expected partial batch, got %s", types.ClassifyBatch(results))
	}
}

func TestSubmit_StaleBlockhashClassified(t *testing.T) {
	broadcaster := &stubBroadcaster{
		failAt: map[int]error{0: errors.New("Blockhash not found")},
	}
	eng := testEngine(nil, broadcaster)
	plans := buildPlans(t, eng, 1)

	results, err := eng.Submit(context.Background(), plans, &stubSigner{})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if !strings.Contains(results[0].Error, types.ErrStaleCheckpoint.Error()) {
		t.Errorf("expected stale checkpoint classification, got %q", results[0].Error)
	}
}

func TestSubmit_OneSigningPassAndSequentialOrder(t *testing.T) {
	broadcaster := &stubBroadcaster{}
	eng := testEngine(nil, broadcaster)
	plans := buildPlans(t, eng, 4)

	signer := &stubSigner{}
	results, err := eng.Submit(context.Background(), plans, signer)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if signer.calls != 1 {
		t.Errorf("expected a single batched signing pass, got %d", signer.calls)
	}

	for i, plan := range plans {
		if broadcaster.sent[i] != plan.Tx {
			t.Errorf("broadcast %d out of order", i)
		}
		if results[i].PoolID != plan.PoolID {
			t.Errorf("result %d does not match plan order", i)
		}
	}
}

func TestSubmit_DiscardsEphemeralKeys(t *testing.T) {
	eng := testEngine(nil, &stubBroadcaster{})
	plans := buildPlans(t, eng, 2)

	if _, err := eng.Submit(context.Background(), plans, &stubSigner{}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	for i, plan := range plans {
		if plan.NewAccount != nil {
			t.Errorf("plan %d still holds its single-use private key", i)
		}
	}
}

func TestSubmit_EmptyBatch(t *testing.T) {
	eng := testEngine(nil, &stubBroadcaster{})

	results, err := eng.Submit(context.Background(), nil, &stubSigner{decline: true})
	if err != nil {
		t.Fatalf("empty batch should be a no-op, got %v", err)
	}

	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestWalletSigner_SignsEveryTransaction(t *testing.T) {
	wallet := solana.NewWallet()
	eng := testEngine(nil, nil)

	token := testToken("tok-1", "100")
	pools := []types.Pool{poolFor(token.Mint, newMint())}

	plans, _, err := eng.PlanAndBuild(context.Background(), wallet.PublicKey(), []string{"tok-1"}, []types.Token{token}, pools)
	if err != nil {
		t.Fatalf("PlanAndBuild failed: %v", err)
	}

	signer := NewWalletSigner(wallet)
	signed, err := signer.SignAll(context.Background(), []*solana.Transaction{plans[0].Tx})
	if err != nil {
		t.Fatalf("SignAll failed: %v", err)
	}

	if err := signed[0].VerifySignatures(); err != nil {
		t.Errorf("batch-signed transaction failed verification: %v", err)
	}
}
