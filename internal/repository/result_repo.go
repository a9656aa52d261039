package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"revisio-backend/internal/models"
)

type ResultRepo struct {
	pool *pgxpool.Pool
}

func NewResultRepo(pool *pgxpool.Pool) *ResultRepo {
	return &ResultRepo{pool: pool}
}

func (r *ResultRepo) Create(ctx context.Context, res *models.StudyResult) error {
	res.ID = uuid.New()

	query := `
		INSERT INTO study_results
			(id, user_id, resource_id, kind, mode, correct_count, incorrect_count,
			 mastered, learning, not_seen, banned, duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		res.ID, res.UserID, res.ResourceID, res.Kind, res.Mode,
		res.CorrectCount, res.IncorrectCount,
		res.Mastered, res.Learning, res.NotSeen, res.Banned, res.DurationSeconds,
	).Scan(&res.CreatedAt)
}

func (r *ResultRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.StudyResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `SELECT id, user_id, resource_id, kind, mode, correct_count, incorrect_count,
			mastered, learning, not_seen, banned, duration_seconds, created_at
		FROM study_results WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.StudyResult
	for rows.Next() {
		res := &models.StudyResult{}
		err := rows.Scan(
			&res.ID, &res.UserID, &res.ResourceID, &res.Kind, &res.Mode,
			&res.CorrectCount, &res.IncorrectCount,
			&res.Mastered, &res.Learning, &res.NotSeen, &res.Banned,
			&res.DurationSeconds, &res.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
