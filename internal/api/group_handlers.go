package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kberg/flashdeck/internal/errors"
	"github.com/kberg/flashdeck/internal/logger"
	"github.com/kberg/flashdeck/internal/realtime"
)

const sseKeepAliveInterval = 25 * time.Second

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	groups, err := s.GroupService.List(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"groups": groups})
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	group, err := s.GroupService.Create(r.Context(), user.ID, req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("group created: id=%d invite_code=%s", group.ID, group.InviteCode)
	respondJSON(w, r, http.StatusCreated, group)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	group, err := s.GroupService.Get(r.Context(), id, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, group)
}

func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		InviteCode string `json:"invite_code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	group, err := s.GroupService.Join(r.Context(), user.ID, req.InviteCode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, group)
}

func (s *Server) handleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.GroupService.Leave(r.Context(), id, user.ID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var before *time.Time
	if raw := r.URL.Query().Get("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("before must be RFC 3339"))
			return
		}
		before = &t
	}
	limit := queryInt(r, "limit", 50)

	messages, err := s.GroupService.Messages(r.Context(), id, user.ID, before, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"messages": messages})
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	message, err := s.GroupService.PostMessage(r.Context(), id, user.ID, req.Body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, message)
}

// handleGroupEvents bridges the in-process hub to an SSE stream. The
// subscription is cancelled when the client disconnects.
func (s *Server) handleGroupEvents(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	log := logger.FromContext(r.Context())

	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		handleError(w, r, errors.NewBadRequestError("streaming not supported"))
		return
	}

	sub, err := s.GroupService.Subscribe(r.Context(), id, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	defer sub.Cancel()

	log.Debug("event stream opened: group_id=%d", id)
	streamEvents(w, r, flusher, sub)
	log.Debug("event stream closed: group_id=%d", id)
}

// streamEvents writes hub events to an SSE response until the client
// disconnects or the subscription is closed.
func streamEvents(w http.ResponseWriter, r *http.Request, flusher http.Flusher, sub *realtime.Subscription) {
	log := logger.FromContext(r.Context())

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(sseKeepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				log.Error("failed to encode event %s: %v", event.ID, err)
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Type, payload)
			flusher.Flush()
		}
	}
}
