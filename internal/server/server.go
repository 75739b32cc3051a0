// Package server exposes ranking sessions over HTTP.
package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/keywords"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/metrics"
	"github.com/spigell/resume-ranker/internal/ranker"
)

const (
	sessionHeader      = "X-Session-ID"
	defaultMaxUploadMB = 16
	defaultMaxSessions = 1000
	defaultSessionTTL  = time.Hour
	maxJSONBody        = 8 << 20
	shutdownTimeout    = 5 * time.Second
)

var routes = []string{
	"/upload",
	"/set-job-description",
	"/rank",
	"/download-report",
	"/reset",
	"/health",
	"/metrics",
}

// Config configures the HTTP server.
type Config struct {
	Addr string
	// Token enables bearer authentication when not empty.
	Token       string
	MaxUploadMB int
	// MaxSessions caps live sessions; the least recently used one is
	// evicted when a new session does not fit.
	MaxSessions int
	// SessionTTL drops sessions idle for longer than this.
	SessionTTL time.Duration
	Workers    int
	MatchMode  keywords.MatchMode
}

// Server serves the ranking API.
type Server struct {
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	store   *Store
	now     func() time.Time
}

// New creates a server. A nil metrics value creates a private one.
func New(cfg Config, log *zap.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = defaultMaxUploadMB
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	s := &Server{
		cfg:     cfg,
		logger:  log,
		metrics: m,
		now:     time.Now,
	}

	newSession := func(id string) *ranker.Session {
		return ranker.New(
			ranker.WithLogger(logger.WithSession(log, id, "")),
			ranker.WithWorkers(cfg.Workers),
			ranker.WithMatchMode(cfg.MatchMode),
		)
	}

	s.store = NewStore(newSession,
		WithMaxSessions(cfg.MaxSessions),
		WithTTL(cfg.SessionTTL),
		WithOnChange(func(total int) {
			m.ActiveSessions.Set(float64(total))
		}),
	)

	return s
}

// Handler returns the root HTTP handler with auth and metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /set-job-description", s.handleSetJobDescription)
	mux.HandleFunc("POST /rank", s.handleRank)
	mux.HandleFunc("POST /download-report", s.handleDownloadReport)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return s.metrics.Middleware(routes...)(s.auth(mux))
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server started", zap.String("addr", s.cfg.Addr), zap.Bool("auth", s.cfg.Token != ""))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) auth(next http.Handler) http.Handler {
	if s.cfg.Token == "" {
		return next
	}

	want := []byte("Bearer " + s.cfg.Token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		got := []byte(strings.TrimSpace(r.Header.Get("Authorization")))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			s.logger.Warn("rejecting unauthenticated request", zap.String("path", r.URL.Path))
			s.writeError(w, ErrUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(sessionHeader)); id != "" {
		return id
	}
	return DefaultSessionID
}
