// Package server provides the HTTP REST API for the recruitment site.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/hevilin/talentsite/internal/config"
	"github.com/hevilin/talentsite/internal/events"
	"github.com/hevilin/talentsite/internal/live"
	"github.com/hevilin/talentsite/internal/server/middleware"
	"github.com/hevilin/talentsite/internal/server/ratelimit"
	"github.com/hevilin/talentsite/internal/session"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	store          Store
	logger         *zap.Logger
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	identity       *IdentityService
	authHandler    *AuthHandler
	events         events.Publisher
	hub            *live.Hub
	corsOrigin     string
	whatsAppNumber string
	keepAlive      time.Duration
}

// Config holds server configuration
type Config struct {
	Port           int
	CORSOrigin     string
	WhatsAppNumber string
	// Demo allows the admin bypass credential.
	Demo bool
}

// Deps are the collaborators the server is built from. Store and JWT are
// required; the rest fall back to in-process implementations.
type Deps struct {
	Store     Store
	Logger    *zap.Logger
	JWT       *config.JWTConfig
	Password  *config.PasswordConfig
	Bypass    *config.BypassConfig
	Revoker   session.Revoker
	Events    events.Publisher
	Hub       *live.Hub
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("server requires a store")
	}
	if deps.JWT == nil {
		return nil, fmt.Errorf("server requires a JWT configuration")
	}
	if deps.Bypass != nil && deps.Bypass.Enabled && !cfg.Demo {
		return nil, fmt.Errorf("admin bypass is only allowed in demo mode")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Password == nil {
		deps.Password = &config.PasswordConfig{BcryptCost: 12, MinLength: 8}
	}
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}
	if deps.Hub == nil {
		deps.Hub = live.NewHub()
	}
	if deps.RateLimit == nil {
		deps.RateLimit = ratelimit.LoadConfig()
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}

	s := &Server{
		store:          deps.Store,
		logger:         deps.Logger,
		events:         deps.Events,
		hub:            deps.Hub,
		corsOrigin:     cfg.CORSOrigin,
		whatsAppNumber: cfg.WhatsAppNumber,
		keepAlive:      25 * time.Second,
	}

	s.rateLimiter = ratelimit.NewLimiter(deps.RateLimit)
	s.jwtService = NewJWTService(deps.JWT, deps.Revoker)
	s.identity = NewIdentityService(deps.Store, deps.Password, deps.Bypass, deps.Logger)
	s.authHandler = NewAuthHandler(s.identity, s.jwtService, s.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Public site
	mux.HandleFunc("GET /jobs", s.handleListActiveJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetActiveJob)
	mux.HandleFunc("GET /jobs/{id}/apply", s.handleApplyLink)
	mux.HandleFunc("POST /candidates", s.handleCreateCandidate)
	mux.HandleFunc("POST /messages", s.handleCreateMessage)
	mux.HandleFunc("POST /profile/generate", s.handleGenerateProfile)

	// Identity
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	s.authed(mux, "POST /auth/logout", s.authHandler.Logout)
	s.authed(mux, "GET /auth/session", s.authHandler.Session)
	s.authed(mux, "PUT /auth/password", s.authHandler.UpdatePassword)

	// Administration
	s.authed(mux, "GET /admin/dashboard", s.handleDashboard)
	s.authed(mux, "GET /admin/stream", s.handleStream)

	s.authed(mux, "GET /admin/jobs", s.handleListJobs)
	s.authed(mux, "POST /admin/jobs", s.handleCreateJob)
	s.authed(mux, "PUT /admin/jobs/{id}", s.handleUpdateJob)
	s.authed(mux, "DELETE /admin/jobs/{id}", s.handleDeleteJob)

	s.authed(mux, "GET /admin/candidates", s.handleListCandidates)
	s.authed(mux, "GET /admin/candidates/{id}", s.handleGetCandidate)
	s.authed(mux, "DELETE /admin/candidates/{id}", s.handleDeleteCandidate)

	s.authed(mux, "GET /admin/messages", s.handleListMessages)
	s.authed(mux, "DELETE /admin/messages/{id}", s.handleDeleteMessage)

	s.authed(mux, "GET /admin/clients", s.handleListClients)
	s.authed(mux, "POST /admin/clients", s.handleCreateClient)
	s.authed(mux, "PUT /admin/clients/{id}", s.handleUpdateClient)
	s.authed(mux, "DELETE /admin/clients/{id}", s.handleDeleteClient)

	s.authed(mux, "GET /admin/onboardings", s.handleListOnboardings)
	s.authed(mux, "POST /admin/onboardings", s.handleCreateOnboarding)
	s.authed(mux, "PUT /admin/onboardings/{id}", s.handleUpdateOnboarding)
	s.authed(mux, "DELETE /admin/onboardings/{id}", s.handleDeleteOnboarding)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second, // the stream handler clears its own deadline
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// authed registers a handler behind the Bearer-token middleware.
func (s *Server) authed(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h))
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	defer s.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// Close stops the rate limiter's cleanup goroutine. It does not close the
// store or the event publisher, which the caller owns.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if s.corsOrigin != "*" {
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// Flush keeps the stream handler working behind the logger.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, s.logger, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status and writes it. Internal errors are logged and
// replaced with a generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds())
		if retry < 1 {
			retry = 1
		}
		response["retry_after"] = retry
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}

	s.logger.Info("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
