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

	"github.com/jonathan/talent-screener/internal/config"
	"github.com/jonathan/talent-screener/internal/db"
	"github.com/jonathan/talent-screener/internal/lifecycle"
	"github.com/jonathan/talent-screener/internal/notify"
	"github.com/jonathan/talent-screener/internal/parsing"
	"github.com/jonathan/talent-screener/internal/scoring"
	"github.com/jonathan/talent-screener/internal/server/middleware"
	"github.com/jonathan/talent-screener/internal/server/ratelimit"
	"github.com/jonathan/talent-screener/internal/types"
)

// Database is the persistence surface the server needs. It extends the
// lifecycle store with the CRUD operations the handlers use directly.
// *db.DB satisfies it; handler tests use an in-memory fake.
type Database interface {
	lifecycle.Store
	UserStore

	SaveResumeProfile(ctx context.Context, profile *types.ResumeProfile) error
	GetResumeProfileByCandidate(ctx context.Context, candidateID uuid.UUID) (*types.ResumeProfile, error)
	DeleteResumeProfile(ctx context.Context, id uuid.UUID) error
	CreateJobPosting(ctx context.Context, job *types.JobPosting) error
	ListJobPostings(ctx context.Context, filters db.JobFilters) ([]types.JobPosting, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status types.JobStatus) error
	RecordJobView(ctx context.Context, id uuid.UUID) error
	ListApplications(ctx context.Context, filters db.ApplicationFilters) ([]types.Application, error)
	CreateInterview(ctx context.Context, interview *types.Interview) error
	SaveInterviewFeedback(ctx context.Context, feedback *types.InterviewFeedback) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	database    Database
	engine      *lifecycle.Engine
	scorer      scoring.MatchScorer
	parser      parsing.ResumeParser
	rateLimiter *ratelimit.Limiter
	userService *UserService
	authHandler *AuthHandler
	closeDB     func()
}

// Config holds server configuration
type Config struct {
	Port            int
	DatabaseURL     string
	ShutdownTimeout time.Duration
}

// New creates a server connected to PostgreSQL.
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := newServer(database, passwordConfig, jwtConfig, cfg)
	s.closeDB = database.Close
	return s, nil
}

// newServer wires the server from its dependencies. Split from New so tests
// can inject a fake database.
func newServer(database Database, passwordConfig *config.PasswordConfig, jwtConfig *config.JWTConfig, cfg Config) *Server {
	scorer := scoring.HeuristicScorer{}

	s := &Server{
		database:    database,
		engine:      lifecycle.NewEngine(database, scorer, notify.TemplateDispatcher{}),
		scorer:      scorer,
		parser:      parsing.NewHeuristicParser(),
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	s.userService = NewUserService(database, passwordConfig)
	jwtService := NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, jwtService)

	mux := http.NewServeMux()
	auth := middleware.Auth(jwtService.AsTokenValidator())

	// Public endpoints
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Resume endpoints
	mux.Handle("POST /resumes", auth(http.HandlerFunc(s.handleIngestResume)))
	mux.Handle("POST /resumes/import", auth(http.HandlerFunc(s.handleImportResume)))
	mux.Handle("GET /resumes/{id}", auth(http.HandlerFunc(s.handleGetResume)))
	mux.Handle("DELETE /resumes/{id}", auth(http.HandlerFunc(s.handleDeleteResume)))
	mux.Handle("GET /resumes/{id}/score", auth(http.HandlerFunc(s.handleResumeScore)))
	mux.Handle("GET /resumes/{id}/matches", auth(http.HandlerFunc(s.handleResumeMatches)))

	// Job posting endpoints
	mux.Handle("POST /jobs", auth(http.HandlerFunc(s.handleCreateJob)))
	mux.Handle("POST /jobs/import", auth(http.HandlerFunc(s.handleImportJob)))
	mux.Handle("GET /jobs", auth(http.HandlerFunc(s.handleListJobs)))
	mux.Handle("GET /jobs/{id}", auth(http.HandlerFunc(s.handleGetJob)))
	mux.Handle("PUT /jobs/{id}/status", auth(http.HandlerFunc(s.handleUpdateJobStatus)))
	mux.Handle("GET /jobs/{id}/match", auth(http.HandlerFunc(s.handleJobMatch)))

	// Application endpoints
	mux.Handle("POST /jobs/{id}/applications", auth(http.HandlerFunc(s.handleSubmitApplication)))
	mux.Handle("GET /jobs/{id}/applications", auth(http.HandlerFunc(s.handleListJobApplications)))
	mux.Handle("GET /applications", auth(http.HandlerFunc(s.handleListMyApplications)))
	mux.Handle("GET /applications/{id}", auth(http.HandlerFunc(s.handleGetApplication)))
	mux.Handle("POST /applications/{id}/transition", auth(http.HandlerFunc(s.handleTransition)))
	mux.Handle("POST /applications/{id}/withdraw", auth(http.HandlerFunc(s.handleWithdraw)))
	mux.Handle("POST /applications/{id}/notes", auth(http.HandlerFunc(s.handleAddNote)))
	mux.Handle("POST /applications/{id}/interview", auth(http.HandlerFunc(s.handleScheduleInterview)))
	mux.Handle("POST /applications/{id}/feedback", auth(http.HandlerFunc(s.handleInterviewFeedback)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
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

	if s.closeDB != nil {
		s.closeDB()
	}
	log.Println("Server stopped")
	return nil
}

// withRateLimit refuses requests over the per-client budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(clientIP(r), r.URL.Path, r.Method) {
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// deliver hands notification intents to their channel. Delivery transport
// is out of scope; intents are logged for the operator.
func (s *Server) deliver(intents []notify.NotificationIntent) {
	for _, intent := range intents {
		log.Printf("notify %s: %s (application %s)", intent.Recipient, intent.Template, intent.Data["application_id"])
	}
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

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
