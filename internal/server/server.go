// Package server exposes extracted records over HTTP for the progress
// dashboard.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tsawler/rogain/export"
	"github.com/tsawler/rogain/internal/logging"
	"github.com/tsawler/rogain/model"
	"github.com/tsawler/rogain/standings"
)

// Loader returns the current record stream.
type Loader func(ctx context.Context) ([]model.Record, error)

// Static returns a Loader serving a fixed record slice.
func Static(records []model.Record) Loader {
	return func(context.Context) ([]model.Record, error) {
		return records, nil
	}
}

// endOfDay is the default ranking time.
const endOfDay = model.TimeOfDay(23*3600 + 59*60 + 59)

// Server is the HTTP feed.
type Server struct {
	load   Loader
	router *chi.Mux
}

// New creates a Server reading records from load.
func New(load Loader) *Server {
	s := &Server{
		load:   load,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/records", s.handleRecords)
	s.router.Get("/teams", s.handleTeams)
	s.router.Get("/teams/{team}/records", s.handleTeamRecords)
	s.router.Get("/standings", s.handleStandings)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	records, ok := s.records(w, r)
	if !ok {
		return
	}
	if team := r.URL.Query().Get("team"); team != "" {
		records = standings.Filter(records, strings.ToUpper(team))
	}
	s.writeRecords(w, r, records)
}

func (s *Server) handleTeamRecords(w http.ResponseWriter, r *http.Request) {
	records, ok := s.records(w, r)
	if !ok {
		return
	}
	team := strings.ToUpper(chi.URLParam(r, "team"))
	records = standings.Filter(records, team)
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "unknown team "+team)
		return
	}
	s.writeRecords(w, r, records)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	records, ok := s.records(w, r)
	if !ok {
		return
	}
	teams := standings.Teams(records)
	if teams == nil {
		teams = []string{}
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	at := endOfDay
	if v := r.URL.Query().Get("at"); v != "" {
		t, err := model.ParseClock(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'at' time, use HH:MM:SS")
			return
		}
		at = t
	}

	records, ok := s.records(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"at":        at,
		"standings": standings.At(records, at),
	})
}

// records loads the record stream, answering 500 on failure.
func (s *Server) records(w http.ResponseWriter, r *http.Request) ([]model.Record, bool) {
	records, err := s.load(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("loading records", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return nil, false
	}
	return records, true
}

// writeRecords answers with CSV when asked for it, JSON otherwise.
func (s *Server) writeRecords(w http.ResponseWriter, r *http.Request, records []model.Record) {
	if r.URL.Query().Get("format") == "csv" || strings.Contains(r.Header.Get("Accept"), "text/csv") {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if err := export.WriteCSV(w, records); err != nil {
			logging.FromContext(r.Context()).Error("writing CSV", "error", err)
		}
		return
	}
	if records == nil {
		records = []model.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger logs one line per request with its status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.FromContext(r.Context()).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
