package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/screfy/ldw/pkg/domain/interfaces"
	"github.com/screfy/ldw/pkg/domain/types"
)

// config holds internal HTTP server configuration
type config struct {
	addr         string
	env          types.EnvMode
	trustedAddrs []string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithEnvMode sets the runtime environment mode
func WithEnvMode(env types.EnvMode) Option {
	return func(c *config) {
		c.env = env
	}
}

// WithTrustedAddrs overrides the origin allow-list
func WithTrustedAddrs(addrs []string) Option {
	return func(c *config) {
		c.trustedAddrs = addrs
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	relayUC interfaces.RelayUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:         "localhost:8080",
		env:          types.EnvProduction,
		trustedAddrs: DefaultTrustedAddrs,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Non-POST requests still answer with the response envelope
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(r.Context(), w, goerr.New(
			fmt.Sprintf("method %s is not allowed", r.Method),
			goerr.T(types.ErrTagMethodNotAllowed),
		))
	})

	// Health check
	router.Get("/health", handleHealth)

	// Webhook endpoint
	guard := NewOriginGuard(cfg.trustedAddrs, cfg.env)
	webhookHandler := NewWebhookHandler(guard, relayUC)
	router.Post("/api/webhook", webhookHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
