// Package api exposes the expression compiler and the achievement
// store over HTTP.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hexmill/hexmill/internal/achieve"
	"github.com/hexmill/hexmill/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Server handles HTTP requests
type Server struct {
	db           store.DB
	tracker      *achieve.Tracker
	errorHandler *ErrorHandler
	logger       *log.Logger
	startTime    time.Time
}

// NewServer creates a new API server
func NewServer(db store.DB) *Server {
	logger := log.New(os.Stdout, "[API] ", log.LstdFlags|log.Lshortfile)
	return &Server{
		db:           db,
		errorHandler: NewErrorHandler(logger),
		logger:       logger,
		startTime:    time.Now(),
	}
}

// SetTracker attaches a tracker whose file-based achievements are
// tested alongside the stored ones.
func (s *Server) SetTracker(t *achieve.Tracker) {
	s.tracker = t
}

// Routes sets up the HTTP routes with proper middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.errorHandler.RecoveryHandler)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/expr", func(r chi.Router) {
		r.Post("/check", s.handleCheck)
		r.Post("/eval", s.handleEval)
	})

	r.Route("/achievements", func(r chi.Router) {
		r.Get("/", s.handleListDefinitions)
		r.Post("/", s.handleCreateDefinition)
		r.Delete("/{id}", s.handleDeleteDefinition)
		r.Post("/test", s.handleTestAchievements)
	})

	r.Get("/unlocks", s.handleListUnlocks)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
