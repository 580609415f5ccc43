package api

import (
	"net/http"

	"github.com/kberg/flashdeck/internal/logger"
)

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	categories, err := s.CategoryService.List(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	category, err := s.CategoryService.Create(r.Context(), user.ID, req.Name, req.Color)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("category created: id=%d name=%s", category.ID, category.Name)
	respondJSON(w, r, http.StatusCreated, category)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	category, err := s.CategoryService.Get(r.Context(), id, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	category, err := s.CategoryService.Update(r.Context(), id, user.ID, req.Name, req.Color)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CategoryService.Delete(r.Context(), id, user.ID); err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("category deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
