package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ssePollInterval paces the event poll loop of the stream endpoint.
const ssePollInterval = 250 * time.Millisecond

// handleResearchStream streams task events as server-sent events until
// the task reaches a terminal state or the client disconnects.
func (s *Server) handleResearchStream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.research.Status(id); err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	offset := 0
	ticker := time.NewTicker(ssePollInterval)
	defer ticker.Stop()

	for {
		events, next, done, err := s.research.Events(id, offset)
		if err != nil {
			return
		}
		offset = next

		for _, ev := range events {
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
		}
		if len(events) > 0 {
			flusher.Flush()
		}
		if done {
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
