package handler

import (
	"net/http"

	"github.com/iqbalbaharum/pool-delegator/internal/storage"
	"github.com/iqbalbaharum/pool-delegator/internal/types"
	"github.com/iqbalbaharum/pool-delegator/internal/utils"
)

type submissionHandler struct {
}

func NewSubmissionHandler() *submissionHandler {
	return &submissionHandler{}
}

func (h *submissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	decoded, err := utils.Decode[types.MySQLFilter](r)

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	submissions, err := storage.Submission.Search(decoded)

	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	utils.Encode(w, r, http.StatusOK, submissions)
}

func (h *submissionHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := storage.Submission.DeleteAll()

	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
