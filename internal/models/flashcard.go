package models

import (
	"time"

	"github.com/google/uuid"
)

type FlashcardDeck struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
}

type FlashcardCard struct {
	ID       uuid.UUID `json:"id"`
	DeckID   uuid.UUID `json:"deck_id"`
	Front    string    `json:"front"`
	Back     string    `json:"back"`
	Position int       `json:"position"`
}

type CreateDeckRequest struct {
	Title string `json:"title"`
	Cards []struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	} `json:"cards"`
}
