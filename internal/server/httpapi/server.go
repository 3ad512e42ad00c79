// Package httpapi exposes the authentication service over HTTP/JSON.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/imararent/imararent/internal/logging"
	"github.com/imararent/imararent/internal/server/avatars"
	"github.com/imararent/imararent/internal/server/config"
	"github.com/imararent/imararent/internal/server/users"
)

type Server struct {
	config  *config.Config
	logger  logging.Logger
	users   *users.Service
	avatars *avatars.Service
	httpsrv *http.Server
}

func NewServer(cfg *config.Config, logger logging.Logger, userService *users.Service, avatarService *avatars.Service) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		users:   userService,
		avatars: avatarService,
	}
	s.httpsrv = &http.Server{
		Addr:         cfg.EndpointAddr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)
	r.Use(newIPRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst).middleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/verify", s.handleVerify)
		r.Post("/resend", s.handleResend)
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/avatar-url", s.handleAvatarURL)
	})

	return r
}

// Run serves until the context is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpsrv.ListenAndServe()
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.config.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpsrv.Shutdown(shutdownCtx)
}
