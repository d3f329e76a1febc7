// Package server provides the HTTP REST API for the counselling service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aura/counsel/internal/analysis"
	"github.com/aura/counsel/internal/catalog"
	"github.com/aura/counsel/internal/config"
	"github.com/aura/counsel/internal/db"
	"github.com/aura/counsel/internal/fetch"
	"github.com/aura/counsel/internal/llm"
	"github.com/aura/counsel/internal/recommend"
	"github.com/aura/counsel/internal/scholarships"
	"github.com/aura/counsel/internal/server/middleware"
	"github.com/aura/counsel/internal/server/ratelimit"
	"github.com/aura/counsel/internal/types"
)

// recommender is the recommendation surface the handlers call.
// Satisfied by *recommend.Service; tests substitute a fake.
type recommender interface {
	Recommend(ctx context.Context, req *types.RecommendationRequest) (*types.RecommendationResponse, error)
	RecommendLocal(ctx context.Context, profile types.StudentProfile) ([]types.Recommendation, error)
}

// submissionStore is the persistence surface for saved questionnaire runs.
// Satisfied by *db.DB.
type submissionStore interface {
	SaveSubmission(ctx context.Context, userID uuid.UUID, profile, response json.RawMessage) (uuid.UUID, error)
	ListSubmissionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db.Submission, error)
	DeleteSubmission(ctx context.Context, id, userID uuid.UUID) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler

	catalog     *catalog.Store
	finder      *scholarships.Finder
	previews    *fetch.Previewer
	recommender recommender
	submissions submissionStore
	hasOracle   bool
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	Model       string

	UniversitiesPath string
	ScholarshipsPath string
	ExamsPath        string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	// Connect to database
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:          database,
		submissions: database,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// Load both static datasets up front so a bad deployment fails at startup,
	// not on the first request.
	s.catalog = catalog.NewStore(cfg.UniversitiesPath)
	s.finder = scholarships.NewFinder(cfg.ScholarshipsPath, cfg.ExamsPath)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.catalog.Load(gctx) })
	g.Go(func() error { return s.finder.Load(gctx) })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}

	s.previews = fetch.NewPreviewer(nil)

	// The analysis oracle is optional: without an API key the local engine and
	// metadata routes still serve, and the oracle route responds 503.
	var oracle recommend.Oracle
	if cfg.APIKey != "" {
		llmConfig := llm.DefaultConfig()
		if cfg.Model != "" {
			llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
		}
		client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create analysis client: %w", err)
		}
		oracle = analysis.NewAnalyzer(client)
		s.hasOracle = true
	}
	s.recommender = recommend.NewService(s.catalog, oracle)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for oracle-backed analysis
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Authentication
	mux.HandleFunc("POST /auth/signup", s.authHandler.Signup)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("POST /auth/oauth", s.authHandler.OAuth)

	// Recommendations
	mux.HandleFunc("POST /api/recommendations", s.handleRecommend)
	mux.HandleFunc("POST /api/recommendations/local", s.handleRecommendLocal)

	// Catalog metadata
	mux.HandleFunc("GET /api/metadata/states", s.handleStates)
	mux.HandleFunc("GET /api/metadata/universities", s.handleUniversities)
	mux.HandleFunc("GET /api/metadata/universities/{id}/page", s.handleUniversityPage)

	// Finder and submission routes require a valid bearer token.
	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("GET /api/scholarships", requireAuth(http.HandlerFunc(s.handleScholarships)))
	mux.Handle("GET /api/entrance-exams", requireAuth(http.HandlerFunc(s.handleExams)))
	mux.Handle("GET /api/submissions", requireAuth(http.HandlerFunc(s.handleListSubmissions)))
	mux.Handle("DELETE /api/submissions/{id}", requireAuth(http.HandlerFunc(s.handleDeleteSubmission)))
	mux.Handle("PUT /auth/password", requireAuth(http.HandlerFunc(s.handleUpdatePassword)))

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		// Check rate limit
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			// Set rate limit headers
			s.setRateLimitHeaders(w, info)
			// Return 429 Too Many Requests
			s.rateLimitResponse(w, info)
			return
		}

		// Set rate limit headers for successful requests
		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	// Log rate limit hit
	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
