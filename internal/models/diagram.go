package models

import (
	"time"

	"github.com/google/uuid"
)

type Diagram struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	ImageURL   string    `json:"image_url"`
	LabelCount int       `json:"label_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// DiagramLabel is a named point on a diagram. Whether a study click hit
// the label is decided by the client's hit testing; the server only
// consumes the resulting boolean.
type DiagramLabel struct {
	ID        uuid.UUID `json:"id"`
	DiagramID uuid.UUID `json:"diagram_id"`
	Text      string    `json:"text"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Position  int       `json:"position"`
}

type CreateDiagramRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Labels   []struct {
		Text string  `json:"text"`
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
	} `json:"labels"`
}
