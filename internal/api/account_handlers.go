package api

import (
	"net/http"
	"time"
)

type achievementView struct {
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	definitions, unlocks, err := s.AchievementService.List(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.Code] = u.UnlockedAt
	}

	views := make([]achievementView, 0, len(definitions))
	for _, def := range definitions {
		view := achievementView{
			Code:        def.Code,
			Name:        def.Name,
			Description: def.Description,
		}
		if at, ok := unlockedAt[def.Code]; ok {
			view.Unlocked = true
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"achievements": views})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	respondJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleSetPremium(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		Premium bool `json:"premium"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.UserService.SetPremium(r.Context(), user.ID, req.Premium)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}
