package types

import "errors"

// Engine error taxonomy. Planning and building errors are scoped to one
// (token, pool) pair; a signing error aborts the whole batch; broadcast
// errors are collected per plan.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingMetadata    = errors.New("missing metadata")
	ErrSigningDeclined    = errors.New("signing declined")
	ErrSubmissionRejected = errors.New("submission rejected")
	ErrStaleCheckpoint    = errors.New("stale checkpoint")
)
