package models

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type QuizQuestion struct {
	ID       uuid.UUID `json:"id"`
	QuizID   uuid.UUID `json:"quiz_id"`
	Prompt   string    `json:"prompt"`
	Answer   string    `json:"answer"`
	Position int       `json:"position"`
}

type CreateQuizRequest struct {
	Title     string `json:"title"`
	Questions []struct {
		Prompt string `json:"prompt"`
		Answer string `json:"answer"`
	} `json:"questions"`
}
