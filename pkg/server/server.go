// Package server exposes the documentation pipeline as a single HTTP
// endpoint. Requests are handled synchronously start-to-finish; the server
// keeps no state between requests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	figmadocgen "github.com/hellenic-development/figma-docgen"
	"github.com/hellenic-development/figma-docgen/pkg/config"
)

// Server handles documentation generation requests.
type Server struct {
	cfg    config.Config
	logger *slog.Logger
	router *chi.Mux
}

// New creates a server around the given configuration.
func New(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/", s.handleGenerate)
	r.Options("/", s.handlePreflight)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	s.router = r
	return s
}

// Handler returns the HTTP handler for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	s.logger.Info("Server started", "addr", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

type generateRequest struct {
	FigmaURL string `json:"figmaUrl"`
}

type generateResponse struct {
	Markdown      string `json:"markdown"`
	FrameName     string `json:"frameName"`
	ElementsCount int    `json:"elementsCount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handlePreflight answers CORS preflight requests with an empty 200.
func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// handleGenerate runs the full pipeline for one frame URL. Validation order:
// request body, URL shape, figma credential, deepseek credential, fetch.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Internal error: "+err.Error())
		return
	}

	frameURL := strings.TrimSpace(req.FigmaURL)
	if frameURL == "" {
		s.writeError(w, http.StatusBadRequest, "Figma URL is required")
		return
	}

	result, err := figmadocgen.Run(r.Context(), figmadocgen.Options{
		FigmaToken:      s.cfg.FigmaToken,
		DeepSeekKey:     s.cfg.DeepSeekKey,
		FrameURL:        frameURL,
		Model:           s.cfg.Model,
		MaxDepth:        s.cfg.MaxDepth,
		FigmaBaseURL:    s.cfg.FigmaBaseURL,
		DeepSeekBaseURL: s.cfg.DeepSeekBaseURL,
		Logger:          slogAdapter{s.logger},
	})
	if err != nil {
		s.writeRunError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, generateResponse{
		Markdown:      result.Markdown,
		FrameName:     result.FrameName,
		ElementsCount: len(result.Elements),
	})
}

// writeRunError maps pipeline error kinds onto the response contract.
func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, figmadocgen.ErrInvalidFrameURL):
		s.writeError(w, http.StatusBadRequest, "Invalid Figma URL format. Expected: figma.com/file/FILE_KEY/...?node-id=NODE_ID")
	case errors.Is(err, figmadocgen.ErrFigmaTokenMissing):
		s.writeError(w, http.StatusInternalServerError, "FIGMA_ACCESS_TOKEN not configured")
	case errors.Is(err, figmadocgen.ErrDeepSeekKeyMissing):
		s.writeError(w, http.StatusInternalServerError, "DEEPSEEK_API_KEY not configured")
	case errors.Is(err, figmadocgen.ErrFrameNotFound):
		s.writeError(w, http.StatusNotFound, "Failed to fetch Figma data. Check your token and URL")
	default:
		s.logger.Error("Pipeline failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal error: "+err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// slogAdapter exposes an slog.Logger through the pipeline's Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Infof(format string, args ...any)  { a.logger.Info(fmt.Sprintf(format, args...)) }
func (a slogAdapter) Warnf(format string, args ...any)  { a.logger.Warn(fmt.Sprintf(format, args...)) }
func (a slogAdapter) Errorf(format string, args ...any) { a.logger.Error(fmt.Sprintf(format, args...)) }
