package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/models"
)

type flashcardRequest struct {
	CategoryID int64           `json:"category_id"`
	CardType   string          `json:"card_type"`
	Content    json.RawMessage `json:"content"`
}

func (req flashcardRequest) parseContent() (card.Content, error) {
	cardType, err := card.ParseType(req.CardType)
	if err != nil {
		return nil, errors.NewValidationError("card_type", err.Error())
	}
	if len(req.Content) == 0 {
		return nil, errors.NewValidationError("content", "cannot be empty")
	}
	content, err := card.Unmarshal(cardType, req.Content)
	if err != nil {
		return nil, errors.NewValidationError("content", err.Error())
	}
	return content, nil
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	q := r.URL.Query()

	filter := models.FlashcardFilter{
		UserID: user.ID,
		Limit:  queryInt(r, "limit", 100),
		Offset: queryInt(r, "offset", 0),
	}
	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid category_id"))
			return
		}
		filter.CategoryID = id
	}
	if raw := q.Get("type"); raw != "" {
		cardType, err := card.ParseType(raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid type"))
			return
		}
		filter.Type = cardType
	}
	if raw := q.Get("learned"); raw != "" {
		learned, err := strconv.ParseBool(raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid learned"))
			return
		}
		filter.Learned = &learned
	}

	cards, err := s.FlashcardService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"flashcards": cards})
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req flashcardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	content, err := req.parseContent()
	if err != nil {
		handleError(w, r, err)
		return
	}

	flashcard, err := s.FlashcardService.Create(r.Context(), user.ID, req.CategoryID, content)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, flashcard)
}

func (s *Server) handleGetFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	flashcard, err := s.FlashcardService.Get(r.Context(), id, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, flashcard)
}

func (s *Server) handleUpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req flashcardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	content, err := req.parseContent()
	if err != nil {
		handleError(w, r, err)
		return
	}

	flashcard, err := s.FlashcardService.Update(r.Context(), id, user.ID, content)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, flashcard)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.FlashcardService.Delete(r.Context(), id, user.ID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetLearned(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Learned bool `json:"learned"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	flashcard, err := s.FlashcardService.SetLearned(r.Context(), id, user.ID, req.Learned)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, flashcard)
}
