package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/logger"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		CategoryID int64  `json:"category_id"`
		Mode       string `json:"mode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	mode, err := card.ParseType(req.Mode)
	if err != nil {
		handleError(w, r, errors.NewValidationError("mode", err.Error()))
		return
	}

	view, err := s.StudyService.Start(r.Context(), user.ID, req.CategoryID, mode)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("study session started: token=%s mode=%s", view.Token, view.Mode)
	respondJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	token := chi.URLParam(r, "token")

	view, err := s.StudyService.Get(r.Context(), user.ID, token)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	token := chi.URLParam(r, "token")

	result, err := s.StudyService.Advance(r.Context(), user.ID, token)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleRetreat(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	token := chi.URLParam(r, "token")

	view, err := s.StudyService.Retreat(r.Context(), user.ID, token)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleMarkStatus(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	token := chi.URLParam(r, "token")

	var req struct {
		CardID int64  `json:"card_id"`
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.StudyService.MarkStatus(r.Context(), user.ID, token, req.CardID, req.Status)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	token := chi.URLParam(r, "token")

	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	outcome, err := s.StudyService.SubmitAnswer(r.Context(), user.ID, token, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handleRestartSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	token := chi.URLParam(r, "token")

	view, err := s.StudyService.Restart(r.Context(), user.ID, token)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	token := chi.URLParam(r, "token")

	if err := s.StudyService.Abandon(r.Context(), user.ID, token); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
