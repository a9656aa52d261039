package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"revisio-backend/internal/models"
)

type FlashcardRepo struct {
	pool *pgxpool.Pool
}

func NewFlashcardRepo(pool *pgxpool.Pool) *FlashcardRepo {
	return &FlashcardRepo{pool: pool}
}

func (r *FlashcardRepo) CreateDeck(ctx context.Context, d *models.FlashcardDeck, cards []models.FlashcardCard) error {
	d.ID = uuid.New()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO flashcard_decks (id, user_id, title, card_count)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		d.ID, d.UserID, d.Title, len(cards),
	).Scan(&d.CreatedAt)
	if err != nil {
		return err
	}

	for i := range cards {
		cards[i].ID = uuid.New()
		cards[i].DeckID = d.ID
		cards[i].Position = i

		_, err := tx.Exec(ctx,
			`INSERT INTO flashcard_cards (id, deck_id, front, back, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			cards[i].ID, d.ID, cards[i].Front, cards[i].Back, i,
		)
		if err != nil {
			return err
		}
	}

	d.CardCount = len(cards)
	return tx.Commit(ctx)
}

func (r *FlashcardRepo) GetDeckByID(ctx context.Context, id uuid.UUID) (*models.FlashcardDeck, error) {
	d := &models.FlashcardDeck{}
	query := `SELECT id, user_id, title, card_count, created_at
		FROM flashcard_decks WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.Title, &d.CardCount, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *FlashcardRepo) ListDecksByUser(ctx context.Context, userID uuid.UUID) ([]*models.FlashcardDeck, error) {
	query := `SELECT id, user_id, title, card_count, created_at
		FROM flashcard_decks WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []*models.FlashcardDeck
	for rows.Next() {
		d := &models.FlashcardDeck{}
		err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.CardCount, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

// GetCardsByDeck returns the deck's cards in stored order; this is the
// payload list a study session is built from.
func (r *FlashcardRepo) GetCardsByDeck(ctx context.Context, deckID uuid.UUID) ([]models.FlashcardCard, error) {
	query := `SELECT id, deck_id, front, back, position
		FROM flashcard_cards WHERE deck_id = $1 ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, query, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.FlashcardCard
	for rows.Next() {
		c := models.FlashcardCard{}
		err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Position)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (r *FlashcardRepo) DeleteDeck(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM flashcard_decks WHERE id = $1", id)
	return err
}
