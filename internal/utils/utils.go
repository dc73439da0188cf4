package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iqbalbaharum/pool-delegator/internal/types"
)

func Encode[T any](w http.ResponseWriter, r *http.Request, status int, v T) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func Decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

func BuildSearchQuery(tableName string, filter types.MySQLFilter) (string, []any) {
	query := fmt.Sprintf(`SELECT * FROM %s`, tableName)
	var values []any
	for idx, q := range filter.Query {
		if idx == 0 {
			query += " WHERE "
		}

		query += fmt.Sprintf("%s %s ?", q.Column, q.Op)
		values = append(values, q.Query)

		if idx < len(filter.Query)-1 {
			query += " AND "
		}
	}

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return query, values
}
