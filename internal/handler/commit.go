package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/pool-delegator/internal/config"
	"github.com/iqbalbaharum/pool-delegator/internal/engine"
	"github.com/iqbalbaharum/pool-delegator/internal/instructions"
	"github.com/iqbalbaharum/pool-delegator/internal/registry"
	"github.com/iqbalbaharum/pool-delegator/internal/rpc"
	"github.com/iqbalbaharum/pool-delegator/internal/storage"
	"github.com/iqbalbaharum/pool-delegator/internal/types"
	"github.com/iqbalbaharum/pool-delegator/internal/utils"
)

type CommitRequest struct {
	Selected []string `json:"selected"`
}

type CommitResponse struct {
	Outcome  string                   `json:"outcome"`
	Results  []types.SubmissionResult `json:"results"`
	Failures []string                 `json:"failures"`
}

type CommitHandler struct {
	engine   *engine.Engine
	client   *rpc.Client
	registry *registry.Registry
	confirm  *rpc.WsRpc
}

func NewCommitHandler(eng *engine.Engine, client *rpc.Client, reg *registry.Registry, confirm *rpc.WsRpc) *CommitHandler {
	return &CommitHandler{
		engine:   eng,
		client:   client,
		registry: reg,
		confirm:  confirm,
	}
}

// Commit runs one full pass for the selected tokens: fetch the inventory and
// pool snapshots, plan and build per-pool transactions, batch-sign with the
// payer wallet, broadcast sequentially, and persist the per-plan results.
func (h *CommitHandler) Commit(w http.ResponseWriter, r *http.Request) {
	decoded, err := utils.Decode[CommitRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(decoded.Selected) == 0 {
		http.Error(w, "no tokens selected", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	owner := config.Payer.PublicKey()

	tokens, err := h.client.FetchInventory(ctx, owner.String())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	pools, err := h.registry.FetchPools(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.warnStaleSnapshots(r, owner, decoded.Selected, tokens)

	plans, failures, err := h.engine.PlanAndBuild(ctx, owner, decoded.Selected, tokens, pools)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	results, err := h.engine.Submit(ctx, plans, engine.NewWalletSigner(config.Payer))
	if err != nil {
		if errors.Is(err, types.ErrSigningDeclined) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for i := range results {
		if err := storage.Submission.SetSubmission(&results[i]); err != nil {
			log.Printf("%s | %s | failed to persist submission: %v", results[i].TokenID, results[i].PoolID, err)
		}
	}

	h.watchConfirmations(results)

	response := CommitResponse{
		Outcome: types.ClassifyBatch(results),
		Results: results,
	}

	for _, f := range failures {
		response.Failures = append(response.Failures, f.Err.Error())
	}

	utils.Encode(w, r, http.StatusOK, response)
}

// warnStaleSnapshots compares each selected token's snapshot balance against
// the live associated account. The snapshot is a point-in-time read, so a
// drifted balance means the planned transfers may exceed available funds.
func (h *CommitHandler) warnStaleSnapshots(r *http.Request, owner solana.PublicKey, selected []string, tokens []types.Token) {
	byId := make(map[string]types.Token, len(tokens))
	for _, t := range tokens {
		byId[t.ID] = t
	}

	for _, id := range selected {
		token, exists := byId[id]
		if !exists {
			continue
		}

		mint, err := solana.PublicKeyFromBase58(token.Mint)
		if err != nil {
			continue
		}

		source, err := instructions.AssociatedHoldingAccount(owner, mint)
		if err != nil {
			continue
		}

		state, err := h.client.GetTokenAccount(r.Context(), source)
		if err != nil || state == nil {
			continue
		}

		snapshot, err := strconv.ParseUint(token.Balance, 10, 64)
		if err != nil {
			continue
		}

		if state.Amount < snapshot {
			log.Printf("%s | snapshot balance %d ahead of live balance %d", token.ID, snapshot, state.Amount)
		}
	}
}

func (h *CommitHandler) watchConfirmations(results []types.SubmissionResult) {
	if h.confirm == nil {
		return
	}

	for _, res := range results {
		if !res.Ok() {
			continue
		}

		sigChan := make(chan rpc.SignatureNotification, 1)
		h.confirm.SubscribeSignature(res.Signature, sigChan)

		go func(tokenId string, poolId string) {
			notification, ok := <-sigChan
			if !ok {
				log.Printf("%s | %s | confirmation watch ended without a notification", tokenId, poolId)
				return
			}
			if notification.Err != nil {
				log.Printf("%s | %s | %s | failed on chain: %v", tokenId, poolId, notification.Signature, notification.Err)
				return
			}
			log.Printf("%s | %s | %s | confirmed at slot %d", tokenId, poolId, notification.Signature, notification.Slot)
		}(res.TokenID, res.PoolID)
	}
}
