package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime"
	"strconv"

	"github.com/prabinb19/ClaudeBuddy/internal/dashboard"
	"github.com/prabinb19/ClaudeBuddy/internal/research"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// refreshRequested reports whether the request forces a cache bypass.
func refreshRequested(r *http.Request) bool {
	switch r.URL.Query().Get("refresh") {
	case "1", "true":
		return true
	}
	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"version":       s.version,
		"claudeDir":     s.svc.Home(),
		"hasClaudeData": s.svc.HasData(),
		"platform":      runtime.GOOS,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.Stats()
	if err != nil {
		log.Printf("stats: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.Projects()
	if err != nil {
		log.Printf("projects: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if projects == nil {
		projects = []dashboard.ProjectSummary{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.Session(r.PathValue("project"), r.PathValue("session"))
	if err != nil {
		if errors.Is(err, dashboard.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		log.Printf("session: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleProductivity(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.Productivity(refreshRequested(r))
	if err != nil {
		log.Printf("productivity: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleInsightsDaily(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.InsightsDaily(r.URL.Query().Get("date"), refreshRequested(r))
	if err != nil {
		log.Printf("insights daily: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleInsightsErrors(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.InsightsErrors(queryInt(r, "days"), refreshRequested(r))
	if err != nil {
		log.Printf("insights errors: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleInsightsTasks(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.InsightsTasks(queryInt(r, "days"), refreshRequested(r))
	if err != nil {
		log.Printf("insights tasks: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	days, err := s.svc.History(refreshRequested(r))
	if err != nil {
		log.Printf("history: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// queryInt parses an integer query parameter; absent or malformed
// values yield 0 so callers apply their defaults.
func queryInt(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) handleResearchStart(w http.ResponseWriter, r *http.Request) {
	var req research.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Query) < 10 {
		writeError(w, http.StatusBadRequest, "query must be at least 10 characters")
		return
	}

	st := s.research.Start(req)
	writeJSON(w, http.StatusOK, map[string]string{
		"task_id": st.TaskID,
		"status":  st.Status,
		"message": "Research task started",
	})
}

func (s *Server) handleResearchStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.research.Status(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleResearchCancel(w http.ResponseWriter, r *http.Request) {
	err := s.research.Cancel(r.PathValue("id"))
	switch {
	case errors.Is(err, research.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	case errors.Is(err, research.ErrTaskFinished):
		writeError(w, http.StatusBadRequest, "task already finished")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Task cancelled"})
	}
}
