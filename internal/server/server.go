// Package server provides the HTTP surface of the resume editor.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/crawl"
	"github.com/jonathan/resume-studio/internal/normalize"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
	"github.com/jonathan/resume-studio/internal/types"
)

const (
	shutdownTimeout = 30 * time.Second
	maxBodyBytes    = 1 << 20
)

// Options wires the parts a Server depends on. Only Config is required.
type Options struct {
	Config *config.Config
	// Editor holds the editing session. Nil starts from the default resume.
	Editor *normalize.Editor
	// Crawl runs crawl attempts. Nil disables the crawl endpoints.
	Crawl *crawl.Service
	// Limiter defaults to ratelimit.LoadConfig.
	Limiter *ratelimit.Limiter
	// Tokens guards the crawl endpoints when set.
	Tokens *TokenService
	// Static overrides the embedded single-page app.
	Static fs.FS
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	cfg         *config.Config
	editor      *normalize.Editor
	crawl       *crawl.Service
	rateLimiter *ratelimit.Limiter
	tokens      *TokenService
	static      fs.FS
	render      func(types.ResumeData) ([]byte, error)

	shutdownOnce sync.Once
	shutdown     chan struct{}
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("server config is required")
	}

	s := &Server{
		cfg:         opts.Config,
		editor:      opts.Editor,
		crawl:       opts.Crawl,
		rateLimiter: opts.Limiter,
		tokens:      opts.Tokens,
		static:      opts.Static,
		render:      rendering.RenderDOCX,
		shutdown:    make(chan struct{}),
	}
	if s.editor == nil {
		s.editor = normalize.NewEditor(types.DefaultResumeData(), types.DefaultEmployer)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	}
	if s.static == nil {
		static, err := embeddedApp()
		if err != nil {
			return nil, err
		}
		s.static = static
	}

	upstream, err := url.Parse(s.cfg.CrawlAPIBase)
	if err != nil || upstream.Scheme == "" || upstream.Host == "" {
		return nil, fmt.Errorf("invalid crawl API base %q", s.cfg.CrawlAPIBase)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Editor
	mux.HandleFunc("GET /resume.json", s.handleSeed)
	mux.HandleFunc("GET /api/resume/default", s.handleDefault)
	mux.HandleFunc("POST /api/resume/normalize", s.handleNormalize)
	mux.HandleFunc("POST /api/resume/employer", s.handleEmployer)
	mux.HandleFunc("POST /api/resume/preview", s.handlePreview)
	mux.HandleFunc("POST /api/resume/docx", s.handleDOCX)

	// Crawl
	mux.Handle("POST /api/crawl", s.guard(http.HandlerFunc(s.handleStartCrawl)))
	mux.Handle("GET /api/crawl", s.guard(http.HandlerFunc(s.handleCrawlState)))
	mux.Handle("GET /api/crawl/stream", s.guard(http.HandlerFunc(s.handleCrawlStream)))
	mux.Handle(crawlAPIPrefix, s.guard(newCrawlProxy(upstream, s.cfg.CrawlAPIKey, s.tokens != nil)))

	mux.HandleFunc("GET /api/hello", s.handleHello)
	mux.HandleFunc("PUT /api/hello", s.handleHello)
	mux.HandleFunc("GET /api/hello/{name}", s.handleHelloName)

	// The app catches every other path; it answers 405 to anything but GET and HEAD.
	mux.Handle("/", s.appHandler())

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for crawl streams
		IdleTimeout:  60 * time.Second,
	}
	s.httpServer.RegisterOnShutdown(s.signalShutdown)

	return s, nil
}

// Handler returns the full middleware chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.Close()
	log.Println("Server stopped")
	return err
}

// Start serves until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Close stops background work: open streams, crawl attempts and the limiter cleanup loop.
func (s *Server) Close() {
	s.signalShutdown()
	if s.crawl != nil {
		s.crawl.Close()
	}
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

func (s *Server) signalShutdown() {
	s.shutdownOnce.Do(func() { close(s.shutdown) })
}

// guard requires a crawl token when token validation is configured.
func (s *Server) guard(next http.Handler) http.Handler {
	if s.tokens == nil {
		return next
	}
	return middleware.AuthMiddleware(s.tokens.AsTokenValidator())(next)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
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
			s.rateLimitResponse(w, info)
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

// readBody reads a request body of at most maxBodyBytes.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = body.Close() }()

	return io.ReadAll(body)
}

// extractClientID uses the IP address from RemoteAddr.
// X-Forwarded-For is ignored because no trusted proxy list is configured.
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
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
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

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
