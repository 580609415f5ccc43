package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/models"
)

func (s *Server) handleStatsSummary(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	summary, err := s.StatsService.Summary(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleStatsStreak(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	streak, err := s.StatsService.Streak(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, streak)
}

func (s *Server) handleStatsCategories(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	stats, err := s.StatsService.CategoryAccuracy(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"categories": stats})
}

func (s *Server) handleSessionHistory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	q := r.URL.Query()

	filter := models.SessionFilter{
		UserID: user.ID,
		Limit:  queryInt(r, "limit", 50),
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
	if raw := q.Get("mode"); raw != "" {
		mode, err := card.ParseType(raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid mode"))
			return
		}
		filter.Mode = mode
	}
	if raw := q.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("since must be RFC 3339"))
			return
		}
		filter.Since = &since
	}

	sessions, err := s.StatsService.History(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"sessions": sessions})
}
