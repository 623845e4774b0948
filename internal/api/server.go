// Package api exposes the content and personalization operations over
// a JSON HTTP API. Handlers go through a small middleware chain for
// request logging, CORS, content type, and panic recovery.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helixmed/helix-core/internal/errors"
	"github.com/helixmed/helix-core/internal/service"
)

// Server serves the HTTP API.
type Server struct {
	service      *service.Service
	errorHandler *errors.HTTPErrorHandler
	logger       *zap.Logger
	port         int
	server       *http.Server
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewServer creates an API server on the given port.
func NewServer(svc *service.Service, port int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		service:      svc,
		errorHandler: errors.NewHTTPErrorHandler(true, logger.Named("errors")),
		logger:       logger,
		port:         port,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins serving HTTP requests. Blocks until the server stops.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/prompts", s.withMiddleware(s.handlePrompts))
	mux.HandleFunc("/api/v1/prompts/", s.withMiddleware(s.handlePromptsWithID))
	mux.HandleFunc("/api/v1/search", s.withMiddleware(s.handleSearch))
	mux.HandleFunc("/api/v1/tag-search", s.withMiddleware(s.handleTagSearch))
	mux.HandleFunc("/api/v1/tags", s.withMiddleware(s.handleTags))
	mux.HandleFunc("/api/v1/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("/api/v1/recommended", s.withMiddleware(s.handleRecommended))
	mux.HandleFunc("/api/v1/favorites", s.withMiddleware(s.handleFavorites))
	mux.HandleFunc("/api/v1/courses", s.withMiddleware(s.handleCourses))
	mux.HandleFunc("/api/v1/courses/", s.withMiddleware(s.handleCoursesWithPath))
	mux.HandleFunc("/api/v1/course-sections", s.withMiddleware(s.handleCourseSections))
	mux.HandleFunc("/api/v1/getting-started", s.withMiddleware(s.handleGettingStarted))
	mux.HandleFunc("/api/v1/journals", s.withMiddleware(s.handleJournals))
	mux.HandleFunc("/api/v1/guides", s.withMiddleware(s.handleGuides))
	mux.HandleFunc("/api/v1/guides/", s.withMiddleware(s.handleGuidesWithPath))
	mux.HandleFunc("/api/v1/stats", s.withMiddleware(s.handleStats))
	mux.HandleFunc("/api/v1/quiz-pass", s.withMiddleware(s.handleQuizPass))
	mux.HandleFunc("/api/v1/saved-searches", s.withMiddleware(s.handleSavedSearches))
	mux.HandleFunc("/api/v1/saved-searches/", s.withMiddleware(s.handleSavedSearchesWithName))
	mux.HandleFunc("/api/v1/saved-search/", s.withMiddleware(s.handleExecuteSavedSearch))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("API server starting", zap.Int("port", s.port))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.cancel()
	return s.server.Shutdown(ctx)
}

// withMiddleware applies the standard middleware chain.
func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.loggingMiddleware(
		s.corsMiddleware(
			s.contentTypeMiddleware(
				s.errorMiddleware(handler),
			),
		),
	)
}

// loggingMiddleware logs each request with a generated id and timing.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		next(w, r)
		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	}
}

// corsMiddleware handles CORS headers.
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// contentTypeMiddleware sets the default content type.
func (s *Server) contentTypeMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next(w, r)
	}
}

// errorMiddleware recovers panics into a standard error response.
func (s *Server) errorMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic in handler",
					zap.String("path", r.URL.Path),
					zap.Any("panic", err))
				s.errorHandler.WriteHTTPError(w, errors.InternalError("Internal server error"))
			}
		}()
		next(w, r)
	}
}

// Response is the standardized API response envelope.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// writeResponse writes a standardized JSON response.
func (s *Server) writeResponse(w http.ResponseWriter, data interface{}, message string, statusCode int) {
	response := Response{
		Success:   statusCode < 400,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}

	w.WriteHeader(statusCode)

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		json.NewEncoder(w).Encode(response)
		return
	}
	w.Write(jsonData)
}

// writeError writes an error response using the error handler.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.errorHandler.WriteHTTPError(w, err)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter) {
	s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidCommand, "Method not allowed"))
}

// pathSegments splits the path remainder after a prefix into segments.
func pathSegments(r *http.Request, prefix string) []string {
	rest := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
