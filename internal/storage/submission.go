package storage

import (
	"database/sql"
	"fmt"

	"github.com/iqbalbaharum/pool-delegator/internal/types"
	"github.com/iqbalbaharum/pool-delegator/internal/utils"
)

type SubmissionStorage struct {
	client *sql.DB
}

func NewSubmissionStorage(db *sql.DB) *SubmissionStorage {
	return &SubmissionStorage{client: db}
}

func (s *SubmissionStorage) SetSubmission(result *types.SubmissionResult) error {
	query := `
			INSERT INTO submissions (tokenId, poolId, signature, error, timestamp)
			VALUES (?, ?, ?, ?, ?)
		`

	_, err := s.client.Exec(
		query,
		result.TokenID,
		result.PoolID,
		result.Signature,
		result.Error,
		result.Timestamp,
	)

	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

func (s *SubmissionStorage) Search(filter types.MySQLFilter) ([]types.SubmissionResult, error) {
	query, values := utils.BuildSearchQuery("submissions", filter)

	rows, err := s.client.Query(query, values...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrExecuteQuery, err)
	}
	defer rows.Close()

	var results []types.SubmissionResult
	for rows.Next() {
		var r types.SubmissionResult
		var id int64
		if err := rows.Scan(&id, &r.TokenID, &r.PoolID, &r.Signature, &r.Error, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrScanData, err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

func (s *SubmissionStorage) DeleteAll() error {
	if _, err := s.client.Exec(`DELETE FROM submissions`); err != nil {
		return fmt.Errorf("%s: %w", ErrExecuteStatement, err)
	}

	return nil
}
