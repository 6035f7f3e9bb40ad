package crops

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/ml"
)

// PGRepo implements Repo using Postgres. Structured fields (inputs,
// results, model info) are stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new recommendation record.
func (r *PGRepo) Create(ctx context.Context, record Recommendation) error {
	const query = `
INSERT INTO crop_recommendations (
	id, user_id, input_parameters, results, source, model_info, warning, status, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	inputJSON, err := json.Marshal(record.Input)
	if err != nil {
		return err
	}
	resultsJSON, err := json.Marshal(record.Results)
	if err != nil {
		return err
	}
	modelInfoJSON, err := marshalNullable(record.ModelInfo)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		inputJSON,
		resultsJSON,
		record.Source,
		modelInfoJSON,
		nullableString(record.Warning),
		record.Status,
		record.CreatedAt,
	)
	return err
}

// GetByID returns a record by its ID.
func (r *PGRepo) GetByID(ctx context.Context, recommendationID string) (Recommendation, error) {
	const query = `
SELECT id, user_id, input_parameters, results, source, model_info, warning, status, created_at
FROM crop_recommendations
WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, query, recommendationID)
	record, err := scanRecommendation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Recommendation{}, ErrNotFound
	}
	return record, err
}

// ListByUser returns records for a user, newest first, with limit/offset.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, user_id, input_parameters, results, source, model_info, warning, status, created_at
FROM crop_recommendations
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Recommendation{}
	for rows.Next() {
		record, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecommendation(row rowScanner) (Recommendation, error) {
	var (
		record        Recommendation
		inputJSON     []byte
		resultsJSON   []byte
		modelInfoJSON []byte
		warning       sql.NullString
		createdAt     time.Time
	)
	if err := row.Scan(
		&record.ID,
		&record.UserID,
		&inputJSON,
		&resultsJSON,
		&record.Source,
		&modelInfoJSON,
		&warning,
		&record.Status,
		&createdAt,
	); err != nil {
		return Recommendation{}, err
	}

	if err := json.Unmarshal(inputJSON, &record.Input); err != nil {
		return Recommendation{}, err
	}
	if err := json.Unmarshal(resultsJSON, &record.Results); err != nil {
		return Recommendation{}, err
	}
	if len(modelInfoJSON) > 0 {
		var info ml.ModelInfo
		if err := json.Unmarshal(modelInfoJSON, &info); err != nil {
			return Recommendation{}, err
		}
		record.ModelInfo = &info
	}
	if warning.Valid {
		record.Warning = warning.String
	}
	record.CreatedAt = createdAt.UTC()
	return record, nil
}

func marshalNullable(info *ml.ModelInfo) (any, error) {
	if info == nil {
		return nil, nil
	}
	return json.Marshal(info)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
