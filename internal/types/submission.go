package types

type SubmissionResult struct {
	TokenID   string `json:"tokenId"`
	PoolID    string `json:"poolId"`
	Signature string `json:"signature"`
	Error     string `json:"error"`
	Timestamp int64  `json:"timestamp"`
}

func (r *SubmissionResult) Ok() bool {
	return r.Error == ""
}

const (
	BATCH_FULL    = "FULL"
	BATCH_PARTIAL = "PARTIAL"
	BATCH_FAILED  = "FAILED"
	BATCH_EMPTY   = "EMPTY"
)

// ClassifyBatch folds per-plan results into the overall batch outcome so a
// caller can tell fully-succeeded, partially-succeeded and fully-failed
// batches apart.
func ClassifyBatch(results []SubmissionResult) string {
	if len(results) == 0 {
		return BATCH_EMPTY
	}

	succeeded := 0
	for i := range results {
		if results[i].Ok() {
			succeeded++
		}
	}

	switch succeeded {
	case len(results):
		return BATCH_FULL
	case 0:
		return BATCH_FAILED
	default:
		return BATCH_PARTIAL
	}
}
