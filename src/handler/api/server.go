// Package api serves the analysis engine, formatter and validator over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"codetools/src/config"
	"codetools/src/controller"
	"codetools/src/model"
	"codetools/src/service/validator"
	"codetools/src/util"
)

// RequestIDHeader carries the per-request identifier on every response
const RequestIDHeader = "X-Request-ID"

// Server provides the HTTP API
type Server struct {
	cfg      *config.Config
	analysis *controller.AnalysisController
	tools    *controller.ToolsController
	mux      *http.ServeMux
}

// NewServer creates a server backed by a wall-clock analysis controller
func NewServer(cfg *config.Config) *Server {
	return NewServerWithController(cfg, controller.NewAnalysisController(cfg))
}

// NewServerWithController creates a server around an existing analysis controller
func NewServerWithController(cfg *config.Config, analysis *controller.AnalysisController) *Server {
	s := &Server{
		cfg:      cfg,
		analysis: analysis,
		tools:    controller.NewToolsController(cfg),
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/format", s.handleFormat)
	s.mux.HandleFunc("/validate", s.handleValidate)
}

// Handler returns the routed handler wrapped in request-ID and recovery middleware
func (s *Server) Handler() http.Handler {
	return withRequestID(withRecovery(s.mux))
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		util.Info("codetools server listening on %s", s.cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		util.Info("Shutting down server (timeout %v)", s.cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				fault := &model.InternalFault{Op: r.Method + " " + r.URL.Path, Cause: rec}
				util.Error("Recovered: %v (request %s)", fault, w.Header().Get(RequestIDHeader))
				errorResponse(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limitRequestBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
}

// decodeBody reads a JSON body and writes the error response itself on failure
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	s.limitRequestBody(w, r)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(w, "request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		errorResponse(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		util.Warn("Failed to encode response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, model.ErrorResponse{
		Error:     message,
		RequestID: w.Header().Get(RequestIDHeader),
	}, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jsonResponse(w, model.HealthResponse{Status: "ok", Version: s.cfg.Agent.Version}, http.StatusOK)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.AnalyzeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Code == nil {
		errorResponse(w, model.ErrInputMissing.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.analysis.Analyze(r.Context(), controller.AnalyzeRequest{
		Code:               *req.Code,
		Language:           req.Language,
		Deep:               req.Deep,
		IncludeSuggestions: req.IncludeSuggestions || s.cfg.Analysis.IncludeSuggestions,
	})
	if err != nil {
		util.Warn("Analysis aborted: %v", err)
		errorResponse(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	result.RequestID = w.Header().Get(RequestIDHeader)
	jsonResponse(w, result, http.StatusOK)
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.FormatRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Code == nil {
		errorResponse(w, model.ErrInputMissing.Error(), http.StatusBadRequest)
		return
	}
	jsonResponse(w, s.tools.Format(*req.Code), http.StatusOK)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.ValidateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Code == nil {
		errorResponse(w, model.ErrInputMissing.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.tools.Validate(r.Context(), *req.Code, req.Language)
	switch {
	case errors.Is(err, validator.ErrUnsupportedLanguage):
		errorResponse(w, err.Error(), http.StatusUnprocessableEntity)
	case err != nil:
		errorResponse(w, err.Error(), http.StatusServiceUnavailable)
	default:
		jsonResponse(w, res, http.StatusOK)
	}
}
