// Package server exposes the analysis engine as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"ValueScope/internal/cache"
	"ValueScope/internal/collector"
	"ValueScope/internal/recorder"
)

// Server serves the analysis HTTP API.
type Server struct {
	Analyzer   *collector.Analyzer
	Industries *cache.IndustryStore
	Recorder   recorder.Recorder
	httpServer *http.Server
}

// New creates a Server listening on addr.
func New(addr string, an *collector.Analyzer, ind *cache.IndustryStore, rec recorder.Recorder) *Server {
	s := &Server{Analyzer: an, Industries: ind, Recorder: rec}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/industries", s.handleIndustries)
	mux.HandleFunc("GET /api/screen", s.handleScreen)
	mux.HandleFunc("GET /api/news", s.handleNews)
	mux.HandleFunc("GET /api/analyze", s.handleAnalyze)
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe starts the HTTP server. Blocks until the server stops.
func (s *Server) ListenAndServe() error {
	log.Printf("[INFO] http server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("[INFO] shutting down http server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndustries(w http.ResponseWriter, r *http.Request) {
	sectors, err := s.Industries.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, map[string]any{"sectors": sectors})
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	industry := r.URL.Query().Get("industry")
	if industry == "" {
		writeError(w, http.StatusBadRequest, "industry query parameter is required")
		return
	}
	stocks, err := s.Analyzer.Screener.Screen(r.Context(), "industry", industry)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, map[string]any{"industry": industry, "stocks": stocks})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	stock := r.URL.Query().Get("stock")
	if stock == "" {
		writeError(w, http.StatusBadRequest, "stock query parameter is required")
		return
	}
	articles, err := s.Analyzer.ClassifyNews(r.Context(), stock, 0)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, map[string]any{"stock": stock, "articles": articles})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol query parameter is required")
		return
	}
	var peers []string
	if p := r.URL.Query().Get("peers"); p != "" {
		for _, peer := range strings.Split(p, ",") {
			if peer = strings.TrimSpace(peer); peer != "" {
				peers = append(peers, peer)
			}
		}
	}
	analysis, err := s.Analyzer.Analyze(r.Context(), strings.ToUpper(symbol), peers)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	recorder.Persist(s.Recorder, analysis)
	writeJSON(w, analysis)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
