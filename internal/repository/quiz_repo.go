package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"revisio-backend/internal/models"
)

type QuizRepo struct {
	pool *pgxpool.Pool
}

func NewQuizRepo(pool *pgxpool.Pool) *QuizRepo {
	return &QuizRepo{pool: pool}
}

func (r *QuizRepo) Create(ctx context.Context, q *models.Quiz, questions []models.QuizQuestion) error {
	q.ID = uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO quizzes (id, user_id, title, question_count)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		q.ID, q.UserID, q.Title, len(questions),
	).Scan(&q.CreatedAt)
	if err != nil {
		return err
	}

	for i := range questions {
		questions[i].ID = uuid.New()
		questions[i].QuizID = q.ID
		questions[i].Position = i

		_, err := tx.Exec(ctx,
			`INSERT INTO quiz_questions (id, quiz_id, prompt, answer, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			questions[i].ID, q.ID, questions[i].Prompt, questions[i].Answer, i,
		)
		if err != nil {
			return err
		}
	}

	q.QuestionCount = len(questions)
	return tx.Commit(ctx)
}

func (r *QuizRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	q := &models.Quiz{}
	query := `SELECT id, user_id, title, question_count, created_at
		FROM quizzes WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.UserID, &q.Title, &q.QuestionCount, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuizRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Quiz, error) {
	query := `SELECT id, user_id, title, question_count, created_at
		FROM quizzes WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		q := &models.Quiz{}
		err := rows.Scan(&q.ID, &q.UserID, &q.Title, &q.QuestionCount, &q.CreatedAt)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}

func (r *QuizRepo) GetQuestions(ctx context.Context, quizID uuid.UUID) ([]models.QuizQuestion, error) {
	query := `SELECT id, quiz_id, prompt, answer, position
		FROM quiz_questions WHERE quiz_id = $1 ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	for rows.Next() {
		q := models.QuizQuestion{}
		err := rows.Scan(&q.ID, &q.QuizID, &q.Prompt, &q.Answer, &q.Position)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *QuizRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM quizzes WHERE id = $1", id)
	return err
}
