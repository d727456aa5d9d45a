// Package server exposes the dashboard operations as a local JSON API
// with an SSE stream for research progress.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/dashboard"
	"github.com/prabinb19/ClaudeBuddy/internal/research"
)

// Server serves the HTTP API for one dashboard service.
type Server struct {
	router   *http.ServeMux
	host     string
	port     int
	svc      *dashboard.Service
	research *research.Manager
	version  string
}

// New builds a Server with its routes registered.
func New(host string, port int, svc *dashboard.Service, rm *research.Manager, version string) *Server {
	s := &Server{
		router:   http.NewServeMux(),
		host:     host,
		port:     port,
		svc:      svc,
		research: rm,
		version:  version,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /api/health", s.handleHealth)
	s.router.HandleFunc("GET /api/stats", s.handleStats)
	s.router.HandleFunc("GET /api/projects", s.handleProjects)
	s.router.HandleFunc("GET /api/sessions/{project}/{session}", s.handleSession)
	s.router.HandleFunc("GET /api/productivity", s.handleProductivity)
	s.router.HandleFunc("GET /api/insights/daily", s.handleInsightsDaily)
	s.router.HandleFunc("GET /api/insights/errors", s.handleInsightsErrors)
	s.router.HandleFunc("GET /api/insights/tasks", s.handleInsightsTasks)
	s.router.HandleFunc("GET /api/history", s.handleHistory)

	s.router.HandleFunc("POST /api/research/start", s.handleResearchStart)
	s.router.HandleFunc("GET /api/research/status/{id}", s.handleResearchStatus)
	s.router.HandleFunc("GET /api/research/stream/{id}", s.handleResearchStream)
	s.router.HandleFunc("POST /api/research/cancel/{id}", s.handleResearchCancel)
}

// Handler returns the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	log.Printf("claudebuddy API listening on http://%s", server.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
