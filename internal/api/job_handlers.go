package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/worker"
)

// maxUploadBytes caps the multipart form size for deck imports.
const maxUploadBytes = 8 << 20

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid multipart form"))
		return
	}

	categoryID, err := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid category_id"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("missing file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	if err := s.ImportService.Enqueue(r.Context(), user.ID, categoryID, header.Filename, data); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("import queued: category_id=%d file=%s size=%d", categoryID, header.Filename, len(data))
	respondJSON(w, r, http.StatusAccepted, map[string]any{"status": "queued"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		CategoryID int64  `json:"category_id"`
		Topic      string `json:"topic"`
		CardType   string `json:"card_type"`
		Count      int    `json:"count"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	err := s.GenerationService.Enqueue(r.Context(), user.ID, req.CategoryID, req.Topic, card.Type(req.CardType), req.Count)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("generation queued: category_id=%d topic=%s count=%d", req.CategoryID, req.Topic, req.Count)
	respondJSON(w, r, http.StatusAccepted, map[string]any{"status": "queued"})
}

// handleUserEvents streams import and generation completion events for the
// authenticated user over SSE.
func (s *Server) handleUserEvents(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	log := logger.FromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		handleError(w, r, errors.NewBadRequestError("streaming not supported"))
		return
	}

	sub := s.Hub.Subscribe(worker.UserTopic(user.ID))
	defer sub.Cancel()

	log.Debug("user event stream opened")
	streamEvents(w, r, flusher, sub)
	log.Debug("user event stream closed")
}
