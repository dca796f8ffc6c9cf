package http

import (
	"context"
	stderrors "errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	feedService "github.com/reshetovitsme/quote-feed/internal/modules/feed/service"
	quoteService "github.com/reshetovitsme/quote-feed/internal/modules/quote/service"
	"github.com/reshetovitsme/quote-feed/internal/shared/config"
	"github.com/reshetovitsme/quote-feed/internal/shared/contract"
	sloghttp "github.com/samber/slog-http"
)

// Server serves the quote API, the feeds and the admin pages
type Server struct {
	cfg          *config.Config
	quoteService *quoteService.Service
	feedService  *feedService.Service
	logger       *slog.Logger
	pages        *template.Template
	server       *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, quoteService *quoteService.Service, feedService *feedService.Service) *Server {
	return &Server{
		cfg:          cfg,
		quoteService: quoteService,
		feedService:  feedService,
		logger:       slog.Default(),
		pages:        template.Must(template.ParseFS(webFS, "web/templates/*.html")),
		server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Handler returns the routed handler wrapped in logging and recovery
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Quote API
	mux.HandleFunc(contract.ListQuotes.Pattern(), s.handleListQuotes)
	mux.HandleFunc(contract.CreateQuote.Pattern(), s.handleCreateQuote)
	mux.HandleFunc(contract.DeleteQuote.Pattern(), s.handleDeleteQuote)

	// Feeds
	mux.HandleFunc("GET "+contract.FeedPath, s.handleRSSFeed)
	mux.HandleFunc("GET "+contract.AtomFeedPath, s.handleAtomFeed)
	mux.HandleFunc("GET "+contract.JSONFeedPath, s.handleJSONFeed)

	mux.HandleFunc("GET "+contract.HealthPath, s.handleHealth)

	// Pages
	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("GET "+contract.AdminPath, s.handleAdmin)
	mux.Handle("GET "+contract.StaticPath, staticHandler())

	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)
	return handler
}

// Start listens on the configured port until Shutdown is called.
func (s *Server) Start() error {
	s.server.Handler = s.Handler()
	s.logger.Info("HTTP server starting", "addr", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.quoteService.Count(r.Context())
	if err != nil {
		s.logger.Error("Health check failed", "error", err)
		s.writeJSON(w, http.StatusServiceUnavailable, contract.HealthResponse{
			Status: "unavailable",
			Env:    s.cfg.AppEnv.String(),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, contract.HealthResponse{
		Status: "ok",
		Env:    s.cfg.AppEnv.String(),
		Quotes: count,
	})
}

// baseURL is the site root as seen by the client.
func baseURL(r *http.Request) string {
	return fmt.Sprintf("%s://%s", getScheme(r), r.Host)
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
