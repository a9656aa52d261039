package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"revisio-backend/internal/models"
	"revisio-backend/internal/review"
)

type Kind string

const (
	Flashcards Kind = "flashcards"
	Quiz       Kind = "quiz"
	Diagram    Kind = "diagram"
)

// DiagramCard is the outer payload of a two-level diagram session: one
// diagram and its ordered labels.
type DiagramCard struct {
	Diagram models.Diagram        `json:"diagram"`
	Labels  []models.DiagramLabel `json:"labels"`
}

// Session is one live study session. It owns exactly one scheduler
// instance; the mutex serializes HTTP access so the scheduler itself
// stays single-threaded. Nothing here survives a process restart.
type Session struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ResourceID uuid.UUID
	Kind       Kind
	StartedAt  time.Time

	mu          sync.Mutex
	lastTouched time.Time

	cards       *review.Engine[models.FlashcardCard]
	questions   *review.Engine[models.QuizQuestion]
	coordinator *review.Coordinator[DiagramCard, models.DiagramLabel]

	publish func(ev models.StudyEvent)
}

// View is the caller-facing snapshot of a session: the current payload,
// its scheduling metadata, and the pass statistics. Exhaustion is a
// state, not an error.
type View struct {
	SessionID   uuid.UUID     `json:"session_id"`
	Kind        Kind          `json:"kind"`
	State       string        `json:"state"`
	Current     interface{}   `json:"current,omitempty"`
	Meta        *review.Meta  `json:"meta,omitempty"`
	Stats       review.Stats  `json:"stats"`
	CurrentCard interface{}   `json:"current_card,omitempty"`
	CardStats   *review.Stats `json:"card_stats,omitempty"`
}

func (s *Session) touch() { s.lastTouched = time.Now() }

// View snapshots the session under its lock.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	v := View{SessionID: s.ID, Kind: s.Kind}

	switch s.Kind {
	case Flashcards:
		v.Stats = s.cards.Stats()
		if payload, ok := s.cards.Current(); ok {
			meta, _ := s.cards.CurrentMeta()
			v.State = "studying"
			v.Current = payload
			v.Meta = &meta
		} else {
			v.State = "exhausted"
		}
	case Quiz:
		v.Stats = s.questions.Stats()
		if payload, ok := s.questions.Current(); ok {
			meta, _ := s.questions.CurrentMeta()
			v.State = "studying"
			v.Current = payload
			v.Meta = &meta
		} else {
			v.State = "exhausted"
		}
	case Diagram:
		v.State = string(s.coordinator.State())
		v.Stats = s.coordinator.LabelStats()
		cardStats := s.coordinator.CardStats()
		v.CardStats = &cardStats
		if card, ok := s.coordinator.CurrentCard(); ok {
			v.CurrentCard = card.Diagram
		}
		if label, ok := s.coordinator.CurrentLabel(); ok {
			meta, _ := s.coordinator.CurrentLabelMeta()
			v.Current = label
			v.Meta = &meta
		}
	}
	return v
}

// apply runs op under the session lock and emits a study event with the
// new head so external listeners (voice playback, presence UIs) can
// react.
func (s *Session) apply(op func() bool) bool {
	s.mu.Lock()
	s.touch()
	ok := op()
	v := s.view()
	s.mu.Unlock()

	if ok && s.publish != nil {
		s.publish(models.StudyEvent{
			SessionID: s.ID,
			Kind:      string(s.Kind),
			State:     v.State,
			Current:   v.Current,
		})
	}
	return ok
}

func (s *Session) Correct() bool {
	return s.apply(func() bool {
		switch s.Kind {
		case Flashcards:
			return s.cards.Correct()
		case Quiz:
			return s.questions.Correct()
		default:
			return s.coordinator.Correct()
		}
	})
}

func (s *Session) Incorrect() bool {
	return s.apply(func() bool {
		switch s.Kind {
		case Flashcards:
			return s.cards.Incorrect()
		case Quiz:
			return s.questions.Incorrect()
		default:
			return s.coordinator.Incorrect()
		}
	})
}

func (s *Session) Unsure() bool {
	return s.apply(func() bool {
		switch s.Kind {
		case Flashcards:
			return s.cards.Unsure()
		case Quiz:
			return s.questions.Unsure()
		default:
			return s.coordinator.Unsure()
		}
	})
}

// Answer scores the current item from an externally computed
// correctness boolean (diagram click hit testing happens client-side).
func (s *Session) Answer(correct bool) bool {
	if correct {
		return s.Correct()
	}
	return s.Incorrect()
}

func (s *Session) Ban() bool {
	return s.apply(func() bool {
		switch s.Kind {
		case Flashcards:
			return s.cards.Ban()
		case Quiz:
			return s.questions.Ban()
		default:
			return s.coordinator.Ban()
		}
	})
}

func (s *Session) Unban(idx int) bool {
	return s.apply(func() bool {
		switch s.Kind {
		case Flashcards:
			return s.cards.Unban(idx)
		case Quiz:
			return s.questions.Unban(idx)
		default:
			return s.coordinator.Unban(idx)
		}
	})
}

func (s *Session) Skip() bool {
	return s.apply(func() bool {
		switch s.Kind {
		case Flashcards:
			return s.cards.Skip()
		case Quiz:
			return s.questions.Skip()
		default:
			return s.coordinator.Skip()
		}
	})
}

func (s *Session) Undo() bool {
	return s.apply(func() bool {
		switch s.Kind {
		case Flashcards:
			return s.cards.Undo()
		case Quiz:
			return s.questions.Undo()
		default:
			return s.coordinator.Undo()
		}
	})
}

func (s *Session) Restart() {
	s.apply(func() bool {
		switch s.Kind {
		case Flashcards:
			s.cards.Restart()
		case Quiz:
			s.questions.Restart()
		default:
			s.coordinator.Restart()
		}
		return true
	})
}

func (s *Session) Shuffle() {
	s.apply(func() bool {
		switch s.Kind {
		case Flashcards:
			s.cards.Shuffle()
		case Quiz:
			s.questions.Shuffle()
		default:
			s.coordinator.Shuffle()
		}
		return true
	})
}

// NextCard advances a two-level session past a completed card.
func (s *Session) NextCard() bool {
	if s.Kind != Diagram {
		return false
	}
	return s.apply(func() bool { return s.coordinator.NextCard() })
}

// SetMode switches the scheduling policy with a full reset. For diagram
// sessions the label deck is the one being switched.
func (s *Session) SetMode(mode review.Mode) {
	s.apply(func() bool {
		switch s.Kind {
		case Flashcards:
			s.cards.SetMode(mode)
		case Quiz:
			s.questions.SetMode(mode)
		default:
			s.coordinator.SetInnerMode(mode)
		}
		return true
	})
}

// Banned lists the banned payloads in unban-index order.
func (s *Session) Banned() []interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []interface{}
	switch s.Kind {
	case Flashcards:
		for _, p := range s.cards.BannedPayloads() {
			out = append(out, p)
		}
	case Quiz:
		for _, p := range s.questions.BannedPayloads() {
			out = append(out, p)
		}
	default:
		for _, p := range s.coordinator.BannedLabels() {
			out = append(out, p)
		}
	}
	return out
}

// result folds the session's final stats into a queue job.
func (s *Session) result() models.ResultJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats review.Stats
	var mode review.Mode
	switch s.Kind {
	case Flashcards:
		stats = s.cards.Stats()
		mode = s.cards.Mode()
	case Quiz:
		stats = s.questions.Stats()
		mode = s.questions.Mode()
	default:
		stats = s.coordinator.CardStats()
		mode = s.coordinator.InnerMode()
	}

	return models.ResultJob{
		ID:              s.ID,
		UserID:          s.UserID,
		ResourceID:      s.ResourceID,
		Kind:            string(s.Kind),
		Mode:            string(mode),
		CorrectCount:    stats.CorrectCount,
		IncorrectCount:  stats.IncorrectCount,
		Mastered:        stats.Mastered,
		Learning:        stats.Learning,
		NotSeen:         stats.NotSeen,
		Banned:          stats.Banned,
		DurationSeconds: int(time.Since(s.StartedAt).Seconds()),
	}
}
