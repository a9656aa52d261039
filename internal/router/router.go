package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"revisio-backend/internal/handlers"
	"revisio-backend/internal/middleware"
	"revisio-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	flashcardHandler *handlers.FlashcardHandler,
	quizHandler *handlers.QuizHandler,
	diagramHandler *handlers.DiagramHandler,
	studyHandler *handlers.StudyHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Flashcard Routes ────
		r.Route("/flashcards/decks", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", flashcardHandler.CreateDeck)
			r.Get("/", flashcardHandler.ListDecks)
			r.Get("/{id}", flashcardHandler.GetDeck)
			r.Delete("/{id}", flashcardHandler.DeleteDeck)
		})

		// ──── Quiz Routes ────
		r.Route("/quizzes", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", quizHandler.Create)
			r.Get("/", quizHandler.List)
			r.Get("/{id}", quizHandler.Get)
			r.Delete("/{id}", quizHandler.Delete)
		})

		// ──── Diagram Routes ────
		r.Route("/diagrams", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", diagramHandler.Create)
			r.Get("/", diagramHandler.List)
			r.Get("/{id}", diagramHandler.Get)
			r.Delete("/{id}", diagramHandler.Delete)
		})

		// ──── Study Session Routes ────
		r.Route("/study", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)

			r.Post("/flashcards/{deckID}/start", studyHandler.StartFlashcards)
			r.Post("/quizzes/{quizID}/start", studyHandler.StartQuiz)
			r.Post("/diagrams/{diagramID}/start", studyHandler.StartDiagrams)

			r.Get("/results", studyHandler.ListResults)
			r.Get("/{kind}/{resourceID}/presence", studyHandler.Presence)

			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", studyHandler.Get)
				r.Delete("/", studyHandler.End)
				r.Post("/correct", studyHandler.Correct)
				r.Post("/incorrect", studyHandler.Incorrect)
				r.Post("/unsure", studyHandler.Unsure)
				r.Post("/answer", studyHandler.Answer)
				r.Post("/ban", studyHandler.Ban)
				r.Post("/unban", studyHandler.Unban)
				r.Post("/skip", studyHandler.Skip)
				r.Post("/undo", studyHandler.Undo)
				r.Post("/restart", studyHandler.Restart)
				r.Post("/shuffle", studyHandler.Shuffle)
				r.Put("/mode", studyHandler.SetMode)
				r.Post("/next-card", studyHandler.NextCard)
				r.Get("/banned", studyHandler.Banned)
				r.Post("/heartbeat", studyHandler.Heartbeat)
			})
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
