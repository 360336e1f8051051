package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/uploads"
)

// Exporter runs the PDF export chain for a resume.
type Exporter interface {
	Export(ctx context.Context, resume *types.Resume) (*export.Result, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	db             Store
	dbConn         *db.DB
	uploads        *uploads.Store
	exporter       Exporter
	jwtService     *JWTService
	userService    *UserService
	authHandler    *AuthHandler
	frontendOrigin string
}

// New creates a new server instance
func New(cfg *config.ServerConfig) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	uploadStore, err := uploads.NewStore(cfg.UploadDir, "/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to create upload store: %w", err)
	}

	s := &Server{
		db:             database,
		dbConn:         database,
		uploads:        uploadStore,
		frontendOrigin: cfg.FrontendOrigin,
	}

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

	// Export pipeline with the dashboard thumbnail sink
	backend := export.NewChromeBackend(cfg.ChromePath)
	s.exporter = export.NewPipeline(backend, &uploadThumbnailSink{store: database, files: uploadStore})

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // exports drive a headless browser
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Everything under /api/resume requires a
// valid bearer token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)

	auth := s.requireAuth()
	mux.Handle("POST /api/resume", auth(http.HandlerFunc(s.handleCreateResume)))
	mux.Handle("GET /api/resume", auth(http.HandlerFunc(s.handleListResumes)))
	mux.Handle("GET /api/resume/{id}", auth(http.HandlerFunc(s.handleGetResume)))
	mux.Handle("PUT /api/resume/{id}", auth(http.HandlerFunc(s.handleUpdateResume)))
	mux.Handle("DELETE /api/resume/{id}", auth(http.HandlerFunc(s.handleDeleteResume)))
	mux.Handle("PUT /api/resume/{id}/upload-images", auth(http.HandlerFunc(s.handleUploadImages)))
	mux.Handle("POST /api/resume/{id}/export", auth(http.HandlerFunc(s.handleExportResume)))

	mux.HandleFunc("GET /health", s.handleHealth)

	if s.uploads != nil {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/",
			http.FileServer(http.Dir(s.uploads.Dir()))))
	}

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

	if s.dbConn != nil {
		s.dbConn.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers scoped to the configured frontend origin. With
// no origin configured it fails closed: no cross-origin grants at all.
func (s *Server) withCORS(next http.Handler) http.Handler {
	origin := s.frontendOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

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
