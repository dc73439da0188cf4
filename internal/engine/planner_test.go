package engine

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/pool-delegator/internal/types"
)

func newMint() string {
	return solana.NewWallet().PublicKey().String()
}

func poolFor(mintA string, mintB string) types.Pool {
	return types.Pool{
		ID:    solana.NewWallet().PublicKey().String(),
		MintA: types.PoolMint{Mint: mintA},
		MintB: types.PoolMint{Mint: mintB},
	}
}

func TestPlan_EvenSplit(t *testing.T) {
	mint := newMint()
	other := newMint()
	token := types.Token{ID: "tok-1", Mint: mint, Balance: "100", Decimals: 6, ProgramID: solana.TokenProgramID.String()}

	pools := []types.Pool{
		poolFor(mint, other),
		poolFor(other, mint),
	}

	plan, err := Plan(token, pools)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(plan.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(plan.Entries))
	}

	for i, entry := range plan.Entries {
		if entry.Amount != 50 {
			t.Errorf("entry %d: expected amount 50, got %d", i, entry.Amount)
		}
	}
}

func TestPlan_RemainderStaysUnallocated(t *testing.T) {
	mint := newMint()
	other := newMint()
	token := types.Token{ID: "tok-1", Mint: mint, Balance: "101"}

	pools := []types.Pool{
		poolFor(mint, other),
		poolFor(other, mint),
	}

	plan, err := Plan(token, pools)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	var total uint64
	for _, entry := range plan.Entries {
		if entry.Amount != 50 {
			t.Errorf("expected amount 50, got %d", entry.Amount)
		}
		total += entry.Amount
	}

	if total > 101 {
		t.Errorf("allocated %d units, more than the held balance", total)
	}
}

func TestPlan_NoMatchingPools(t *testing.T) {
	token := types.Token{ID: "tok-1", Mint: newMint(), Balance: "500"}

	pools := []types.Pool{
		poolFor(newMint(), newMint()),
	}

	plan, err := Plan(token, pools)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(plan.Entries) != 0 {
		t.Errorf("expected empty plan, got %d entries", len(plan.Entries))
	}
}

func TestPlan_DistinctPoolsSameMintPair(t *testing.T) {
	mint := newMint()
	other := newMint()
	token := types.Token{ID: "tok-1", Mint: mint, Balance: "90"}

	// Two pools on the same mint pair are distinct entities and each gets a
	// share.
	pools := []types.Pool{
		poolFor(mint, other),
		poolFor(mint, other),
		poolFor(mint, other),
	}

	plan, err := Plan(token, pools)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(plan.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(plan.Entries))
	}

	for _, entry := range plan.Entries {
		if entry.Amount != 30 {
			t.Errorf("expected amount 30, got %d", entry.Amount)
		}
	}
}

func TestPlan_InvalidBalance(t *testing.T) {
	for _, balance := range []string{"", "abc", "-5", "1.5"} {
		token := types.Token{ID: "tok-1", Mint: newMint(), Balance: balance}

		_, err := Plan(token, []types.Pool{poolFor(token.Mint, newMint())})
		if !errors.Is(err, types.ErrInvalidInput) {
			t.Errorf("balance %q: expected ErrInvalidInput, got %v", balance, err)
		}
	}
}

func TestPlan_ZeroBalance(t *testing.T) {
	token := types.Token{ID: "tok-1", Mint: newMint(), Balance: "0"}

	plan, err := Plan(token, []types.Pool{poolFor(token.Mint, newMint())})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(plan.Entries) != 1 || plan.Entries[0].Amount != 0 {
		t.Errorf("expected a single zero-amount entry, got %+v", plan.Entries)
	}
}
