package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"revisio-backend/internal/models"
)

type DiagramRepo struct {
	pool *pgxpool.Pool
}

func NewDiagramRepo(pool *pgxpool.Pool) *DiagramRepo {
	return &DiagramRepo{pool: pool}
}

func (r *DiagramRepo) Create(ctx context.Context, d *models.Diagram, labels []models.DiagramLabel) error {
	d.ID = uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO diagrams (id, user_id, title, image_url, label_count)
		 VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		d.ID, d.UserID, d.Title, d.ImageURL, len(labels),
	).Scan(&d.CreatedAt)
	if err != nil {
		return err
	}

	for i := range labels {
		labels[i].ID = uuid.New()
		labels[i].DiagramID = d.ID
		labels[i].Position = i

		_, err := tx.Exec(ctx,
			`INSERT INTO diagram_labels (id, diagram_id, text, x, y, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			labels[i].ID, d.ID, labels[i].Text, labels[i].X, labels[i].Y, i,
		)
		if err != nil {
			return err
		}
	}

	d.LabelCount = len(labels)
	return tx.Commit(ctx)
}

func (r *DiagramRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Diagram, error) {
	d := &models.Diagram{}
	query := `SELECT id, user_id, title, image_url, label_count, created_at
		FROM diagrams WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Title, &d.ImageURL, &d.LabelCount, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DiagramRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Diagram, error) {
	query := `SELECT id, user_id, title, image_url, label_count, created_at
		FROM diagrams WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var diagrams []*models.Diagram
	for rows.Next() {
		d := &models.Diagram{}
		err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.ImageURL, &d.LabelCount, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		diagrams = append(diagrams, d)
	}
	return diagrams, nil
}

func (r *DiagramRepo) GetLabels(ctx context.Context, diagramID uuid.UUID) ([]models.DiagramLabel, error) {
	query := `SELECT id, diagram_id, text, x, y, position
		FROM diagram_labels WHERE diagram_id = $1 ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, query, diagramID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []models.DiagramLabel
	for rows.Next() {
		l := models.DiagramLabel{}
		err := rows.Scan(&l.ID, &l.DiagramID, &l.Text, &l.X, &l.Y, &l.Position)
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, nil
}

func (r *DiagramRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM diagrams WHERE id = $1", id)
	return err
}
