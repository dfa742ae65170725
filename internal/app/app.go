// Package app initializes and runs the account service: it wires the
// database, the KV cache, the notification broker, and the object store into
// the domain services and serves the HTTP API with graceful shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/accountd/internal/auth"
	"github.com/dmitrijs2005/accountd/internal/avatars"
	"github.com/dmitrijs2005/accountd/internal/cache"
	"github.com/dmitrijs2005/accountd/internal/config"
	"github.com/dmitrijs2005/accountd/internal/confirmation"
	"github.com/dmitrijs2005/accountd/internal/db"
	"github.com/dmitrijs2005/accountd/internal/httpapi"
	"github.com/dmitrijs2005/accountd/internal/logging"
	"github.com/dmitrijs2005/accountd/internal/notify"
	"github.com/dmitrijs2005/accountd/internal/storage"
	"github.com/dmitrijs2005/accountd/internal/users"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	router     *httpapi.Router
	repos      db.RepositoryManager
	dispatcher *notify.AMQPDispatcher
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repos, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	kv, err := cache.NewRedisCache(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("cache init error: %w", err)
	}

	dispatcher, err := notify.NewAMQPDispatcher(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("broker init error: %w", err)
	}

	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	tokens := auth.NewTokenService(cfg)
	directory := users.NewDirectory(repos.Users(), kv, cfg, logger)
	accounts := users.NewService(directory, auth.NewBcryptHasher(), tokens,
		confirmation.NewService(kv, cfg), dispatcher, logger)
	avatarSvc := avatars.NewService(store, directory, logger)

	return &App{
		config:     cfg,
		logger:     logger,
		router:     httpapi.NewRouter(accounts, avatarSvc, tokens, logger),
		repos:      repos,
		dispatcher: dispatcher,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
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

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	server := app.router.App()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Listen(app.config.EndpointAddrHTTP); err != nil {
			app.logger.Error(ctx, "http server stopped", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "shutting down")
	if err := server.Shutdown(); err != nil {
		app.logger.Error(ctx, "http shutdown error", "error", err)
	}

	wg.Wait()

	if err := app.dispatcher.Close(); err != nil {
		app.logger.Error(ctx, "broker close error", "error", err)
	}
	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
