// Package server initializes and runs the backend application: storage,
// code store, HTTP API, and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/imararent/imararent/internal/logging"
	"github.com/imararent/imararent/internal/server/avatars"
	"github.com/imararent/imararent/internal/server/codes"
	"github.com/imararent/imararent/internal/server/config"
	"github.com/imararent/imararent/internal/server/httpapi"
	"github.com/imararent/imararent/internal/server/mailer"
	"github.com/imararent/imararent/internal/server/migrations"
	usersrepo "github.com/imararent/imararent/internal/server/repositories/users"
	"github.com/imararent/imararent/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger()

	repo, err := newUserRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	codeStore, err := newCodeStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	userService := users.NewService(repo, codeStore, mailer.NewLogMailer(logger), logger, cfg)
	avatarService := avatars.NewService(cfg)
	server := httpapi.NewServer(cfg, logger, userService, avatarService)

	return &App{config: cfg, logger: logger, server: server}, nil
}

// newUserRepository selects postgres when a DSN is configured and the
// in-memory store otherwise.
func newUserRepository(ctx context.Context, cfg *config.Config, logger logging.Logger) (usersrepo.Repository, error) {
	if cfg.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, using in-memory user store")
		return usersrepo.NewMemoryRepository(), nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("error setting dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return usersrepo.NewPostgresRepository(db), nil
}

// newCodeStore selects redis when an address is configured and the
// in-memory store otherwise.
func newCodeStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (codes.Store, error) {
	if cfg.RedisAddr == "" {
		logger.Warn(ctx, "no redis address configured, using in-memory code store")
		return codes.NewMemoryStore(cfg.CodeTTL, cfg.CodeMaxAttempts), nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping error: %w", err)
	}

	return codes.NewRedisStore(client, cfg.CodeTTL, cfg.CodeMaxAttempts), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
	}
}
