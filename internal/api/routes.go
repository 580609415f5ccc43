package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleCreateCategory)
			r.Get("/{id}", s.handleGetCategory)
			r.Put("/{id}", s.handleUpdateCategory)
			r.Delete("/{id}", s.handleDeleteCategory)
		})

		r.Route("/flashcards", func(r chi.Router) {
			r.Get("/", s.handleListFlashcards)
			r.Post("/", s.handleCreateFlashcard)
			r.Get("/{id}", s.handleGetFlashcard)
			r.Put("/{id}", s.handleUpdateFlashcard)
			r.Delete("/{id}", s.handleDeleteFlashcard)
			r.Post("/{id}/learned", s.handleSetLearned)
		})

		r.Route("/study/sessions", func(r chi.Router) {
			r.Post("/", s.handleStartSession)
			r.Get("/{token}", s.handleGetSession)
			r.Post("/{token}/advance", s.handleAdvance)
			r.Post("/{token}/retreat", s.handleRetreat)
			r.Post("/{token}/status", s.handleMarkStatus)
			r.Post("/{token}/answer", s.handleSubmitAnswer)
			r.Post("/{token}/restart", s.handleRestartSession)
			r.Delete("/{token}", s.handleAbandonSession)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/summary", s.handleStatsSummary)
			r.Get("/streak", s.handleStatsStreak)
			r.Get("/categories", s.handleStatsCategories)
			r.Get("/sessions", s.handleSessionHistory)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", s.handleListGroups)
			r.Post("/", s.handleCreateGroup)
			r.Post("/join", s.handleJoinGroup)
			r.Get("/{id}", s.handleGetGroup)
			r.Post("/{id}/leave", s.handleLeaveGroup)
			r.Get("/{id}/messages", s.handleListMessages)
			r.Post("/{id}/messages", s.handlePostMessage)
			r.Get("/{id}/events", s.handleGroupEvents)
		})

		r.Post("/imports", s.handleImport)
		r.Get("/events", s.handleUserEvents)
		r.Post("/generate", s.handleGenerate)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/me", s.handleMe)
		r.Post("/me/premium", s.handleSetPremium)
	})

	return r
}
