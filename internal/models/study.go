package models

import (
	"time"

	"github.com/google/uuid"
)

// StudyResult is the persisted outcome of a finished live session. Live
// scheduler state itself is memory-only and never survives a restart.
type StudyResult struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ResourceID      uuid.UUID `json:"resource_id"`
	Kind            string    `json:"kind"` // "flashcards" | "quiz" | "diagram"
	Mode            string    `json:"mode"`
	CorrectCount    int       `json:"correct_count"`
	IncorrectCount  int       `json:"incorrect_count"`
	Mastered        int       `json:"mastered"`
	Learning        int       `json:"learning"`
	NotSeen         int       `json:"not_seen"`
	Banned          int       `json:"banned"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

// ResultJob is the queue payload the worker drains into study_results.
type ResultJob struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ResourceID      uuid.UUID `json:"resource_id"`
	Kind            string    `json:"kind"`
	Mode            string    `json:"mode"`
	CorrectCount    int       `json:"correct_count"`
	IncorrectCount  int       `json:"incorrect_count"`
	Mastered        int       `json:"mastered"`
	Learning        int       `json:"learning"`
	NotSeen         int       `json:"not_seen"`
	Banned          int       `json:"banned"`
	DurationSeconds int       `json:"duration_seconds"`
	RetryCount      int       `json:"retry_count,omitempty"`
}

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// StudyEvent notifies listeners (e.g. a text-to-speech player) that the
// head of a live session changed.
type StudyEvent struct {
	SessionID uuid.UUID   `json:"session_id"`
	Kind      string      `json:"kind"`
	State     string      `json:"state"`
	Current   interface{} `json:"current,omitempty"`
}
