// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/poliscan/poliscan/internal/analyze"
	"github.com/poliscan/poliscan/internal/config"
	"github.com/poliscan/poliscan/internal/history"
	"github.com/poliscan/poliscan/internal/report"
	"github.com/poliscan/poliscan/internal/risk"
)

// Cap on request bodies; policy text is the largest expected payload.
const maxRequestBytes = 8 << 20

// Server is the HTTP API server.
type Server struct {
	mu       sync.RWMutex
	cfg      *config.Config
	cfgPath  string
	cfgHash  string
	analyzer *analyze.Analyzer

	store  *history.Store
	logger *slog.Logger
	srv    *http.Server
}

// New creates a server from the config at cfgPath. A nil store disables
// history endpoints.
func New(cfgPath string, store *history.Store, logger *slog.Logger) (*Server, error) {
	cfg, hash, err := config.LoadWithHash(cfgPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		cfgPath: cfgPath,
		cfgHash: hash,
		store:   store,
		logger:  logger,
	}
	s.analyzer = s.newAnalyzer(cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /analyze/url", s.handleAnalyzeURL)
	mux.HandleFunc("POST /classify", s.handleClassify)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: mux,
	}
	return s, nil
}

func (s *Server) newAnalyzer(cfg *config.Config) *analyze.Analyzer {
	opts := []analyze.Option{analyze.WithLogger(s.logger)}
	if s.store != nil {
		opts = append(opts, analyze.WithHistory(s.store))
	}
	return analyze.New(cfg, opts...)
}

// Start begins serving. Blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("server listening", "addr", s.srv.Addr, "config_hash", s.cfgHash)
	if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Handler returns the HTTP handler. For testing.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// ReloadConfig re-reads the config file and swaps the active configuration.
// No-op when the file content is unchanged.
func (s *Server) ReloadConfig() error {
	cfg, hash, err := config.LoadWithHash(s.cfgPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if hash == s.cfgHash {
		return nil
	}
	s.cfg = cfg
	s.cfgHash = hash
	s.analyzer = s.newAnalyzer(cfg)
	s.logger.Info("config reloaded", "config_hash", hash)
	return nil
}

// ConfigPath returns the path the server loads configuration from.
func (s *Server) ConfigPath() string {
	return s.cfgPath
}

func (s *Server) currentAnalyzer() *analyze.Analyzer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer
}

type analyzeRequest struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

type analyzeURLRequest struct {
	URL    string `json:"url"`
	Render bool   `json:"render,omitempty"`
}

type classifyRequest struct {
	Type string `json:"type"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	source := req.Source
	if source == "" {
		source = "api"
	}

	doc, err := s.currentAnalyzer().Text(r.Context(), req.Text, source)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeReport(w, doc)
}

func (s *Server) handleAnalyzeURL(w http.ResponseWriter, r *http.Request) {
	var req analyzeURLRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	doc, err := s.currentAnalyzer().URL(r.Context(), req.URL, req.Render)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeReport(w, doc)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	category := risk.Classify(req.Type)
	writeJSON(w, http.StatusOK, map[string]any{
		"type":       req.Type,
		"category":   category,
		"risk":       risk.ItemRiskLevel(category),
		"risk_score": risk.ItemRiskScore(category),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	n := 20
	if q := r.URL.Query().Get("n"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	entries, err := s.store.Recent(n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": entries})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	hash := s.cfgHash
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"config_hash": hash,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	return true
}

func writeReport(w http.ResponseWriter, doc report.Document) {
	out, err := report.FormatJSON(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
