package session

import (
	"context"
	"encoding/json"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"revisio-backend/internal/models"
	"revisio-backend/internal/review"
)

const ResultQueue = "queue:study-results"

// Manager owns all live study sessions in this process. Each session is
// independent; the manager only guards the registry map. Idle sessions
// are evicted by a janitor goroutine.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	redis    *redis.Client
	idleTTL  time.Duration
	stopChan chan struct{}
}

// NewManager creates a session manager. redisClient may be nil in
// tests; events and result jobs are then dropped.
func NewManager(redisClient *redis.Client, idleTTL time.Duration) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		redis:    redisClient,
		idleTTL:  idleTTL,
		stopChan: make(chan struct{}),
	}
}

// Start launches the idle-session janitor.
func (m *Manager) Start() {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-m.stopChan:
				return
			case <-ticker.C:
				m.evictIdle()
			}
		}
	}()
}

func (m *Manager) Stop() {
	close(m.stopChan)
}

func (m *Manager) evictIdle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastTouched)
		s.mu.Unlock()
		if idle > m.idleTTL {
			delete(m.sessions, id)
			log.Printf("Evicted idle study session %s", id)
		}
	}
}

func sessionRand(seed *uint64) *rand.Rand {
	if seed == nil {
		return nil
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}

func (m *Manager) register(s *Session) {
	s.StartedAt = time.Now()
	s.lastTouched = s.StartedAt
	s.publish = func(ev models.StudyEvent) { m.publishEvent(s.UserID, ev) }

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
}

// StartFlashcards opens a live session over a deck's cards in stored
// order. seed pins the scheduler's randomness for reproducible runs.
func (m *Manager) StartFlashcards(userID, deckID uuid.UUID, cards []models.FlashcardCard, mode review.Mode, seed *uint64) *Session {
	s := &Session{
		ID:         uuid.New(),
		UserID:     userID,
		ResourceID: deckID,
		Kind:       Flashcards,
		cards: review.NewEngine(cards, mode,
			func(c models.FlashcardCard) string { return c.ID.String() },
			sessionRand(seed)),
	}
	m.register(s)
	return s
}

// StartQuiz opens a review session over a quiz's questions.
func (m *Manager) StartQuiz(userID, quizID uuid.UUID, questions []models.QuizQuestion, mode review.Mode, seed *uint64) *Session {
	s := &Session{
		ID:         uuid.New(),
		UserID:     userID,
		ResourceID: quizID,
		Kind:       Quiz,
		questions: review.NewEngine(questions, mode,
			func(q models.QuizQuestion) string { return q.ID.String() },
			sessionRand(seed)),
	}
	m.register(s)
	return s
}

// StartDiagrams opens a two-level session: an outer deck of diagrams,
// each card carrying its own label deck.
func (m *Manager) StartDiagrams(userID uuid.UUID, cards []DiagramCard, cardMode, labelMode review.Mode, seed *uint64) *Session {
	resourceID := uuid.Nil
	if len(cards) > 0 {
		resourceID = cards[0].Diagram.ID
	}
	s := &Session{
		ID:         uuid.New(),
		UserID:     userID,
		ResourceID: resourceID,
		Kind:       Diagram,
		coordinator: review.NewCoordinator(cards, cardMode, labelMode,
			func(c DiagramCard) []models.DiagramLabel { return c.Labels },
			func(c DiagramCard) string { return c.Diagram.ID.String() },
			func(l models.DiagramLabel) string { return l.ID.String() },
			sessionRand(seed)),
	}
	m.register(s)
	return s
}

// Get returns the live session, touching nothing.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// End removes the session and enqueues its result for persistence.
func (m *Manager) End(ctx context.Context, id uuid.UUID) (*models.ResultJob, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return nil, false
	}

	job := s.result()
	if m.redis != nil {
		jobBytes, _ := json.Marshal(job)
		if err := m.redis.LPush(ctx, ResultQueue, string(jobBytes)).Err(); err != nil {
			log.Printf("Failed to enqueue study result %s: %v", job.ID, err)
		}
	}
	return &job, true
}

func (m *Manager) publishEvent(userID uuid.UUID, ev models.StudyEvent) {
	if m.redis == nil {
		return
	}
	msg := models.WSMessage{Type: "study_event", Payload: ev}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	m.redis.Publish(ctx, "user_updates:"+userID.String(), data)
}

// Presence: heartbeats mark a user as live on a resource with a short
// TTL; listing scans the matching keys. Polling clients call both.

func presenceKey(resourceID, userID uuid.UUID) string {
	return "presence:" + resourceID.String() + ":" + userID.String()
}

// Heartbeat refreshes the caller's presence on a resource.
func (m *Manager) Heartbeat(ctx context.Context, resourceID, userID uuid.UUID, ttl time.Duration) error {
	if m.redis == nil {
		return nil
	}
	return m.redis.Set(ctx, presenceKey(resourceID, userID), time.Now().Unix(), ttl).Err()
}

// Presence lists user IDs currently live on a resource.
func (m *Manager) Presence(ctx context.Context, resourceID uuid.UUID) ([]uuid.UUID, error) {
	if m.redis == nil {
		return nil, nil
	}

	var users []uuid.UUID
	prefix := "presence:" + resourceID.String() + ":"
	iter := m.redis.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		id, err := uuid.Parse(iter.Val()[len(prefix):])
		if err != nil {
			continue
		}
		users = append(users, id)
	}
	return users, iter.Err()
}
