package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacematch_backend/internal/conversation"
	"spacematch_backend/internal/conversation/engine"
	"spacematch_backend/internal/conversation/session"
	"spacematch_backend/internal/events"
	"spacematch_backend/internal/handoff"
	handoffservice "spacematch_backend/internal/handoff/service"
	apphttp "spacematch_backend/internal/http"
	"spacematch_backend/internal/http/router"
	"spacematch_backend/internal/scheduler"
	"spacematch_backend/platform/ai"
	"spacematch_backend/platform/ai/gemini"
	"spacematch_backend/platform/ai/moonshot"
	"spacematch_backend/platform/config"
	"spacematch_backend/platform/db"
	"spacematch_backend/platform/logger"
	"spacematch_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Session store: Redis when configured, in-process otherwise
	sessionStore, closeSessions := initSessionStore(cfg, log)
	if closeSessions != nil {
		defer closeSessions()
	}

	notifier, closeNotifier := initHandoffNotifier(cfg, log)
	if closeNotifier != nil {
		defer closeNotifier()
	}

	generator := initGenerator(ctx, cfg, log)

	gazetteer := initGazetteer(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	dialogueEngine := engine.New(engine.Config{
		Generator:   generator,
		Gazetteer:   gazetteer,
		Timeout:     cfg.GetAITimeout(),
		MaxTokens:   cfg.GetAIMaxTokens(),
		Temperature: cfg.GetAITemperature(),
		Logger:      log,
	})

	conversationModule := conversation.NewModule(dialogueEngine, sessionStore, eventBus, val, log)

	// Handoff module subscribes to conversation events and serves the read API
	handoffModule := handoff.NewModule(pool, notifier, val, log)
	handoffModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			conversationModule,
			handoffModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

func initSessionStore(cfg *config.Config, log *logger.Logger) (session.Store, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; using in-memory session store")
		return session.NewMemoryStore(cfg.GetSessionTTL()), nil
	}

	store, err := session.NewRedisStore(cfg)
	if err != nil {
		log.Error("failed to initialize redis session store", "error", err)
		panic("failed to initialize redis session store: " + err.Error())
	}
	log.Info("redis session store initialized")

	return store, func() { _ = store.Close() }
}

func initHandoffNotifier(cfg *config.Config, log *logger.Logger) (handoffservice.Notifier, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; handoff notifications disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize handoff notifier client", "error", err)
		return nil, nil
	}

	return client, func() { _ = client.Close() }
}

func initGenerator(ctx context.Context, cfg *config.Config, log *logger.Logger) ai.TextGenerator {
	switch cfg.GetAIProvider() {
	case "moonshot":
		if cfg.GetMoonshotAPIKey() == "" {
			log.Warn("MOONSHOT_API_KEY not configured; generative replies disabled")
			return nil
		}
		log.Info("moonshot text generator initialized")
		return moonshot.New(moonshot.Config{
			APIKey:  cfg.GetMoonshotAPIKey(),
			BaseURL: cfg.GetMoonshotBaseURL(),
			Model:   cfg.GetMoonshotModel(),
			Timeout: cfg.GetAITimeout(),
		})
	case "gemini":
		client, err := gemini.New(ctx, gemini.Config{
			APIKey: cfg.GetGeminiAPIKey(),
			Model:  cfg.GetGeminiModel(),
		})
		if err != nil {
			log.Warn("failed to initialize gemini client; generative replies disabled", "error", err)
			return nil
		}
		log.Info("gemini text generator initialized")
		return client
	default:
		log.Info("generative replies disabled by configuration")
		return nil
	}
}

func initGazetteer(cfg *config.Config, log *logger.Logger) *engine.Gazetteer {
	path := cfg.GetGazetteerFile()
	if path == "" {
		return engine.NewGazetteer()
	}

	gaz, err := engine.LoadGazetteer(path)
	if err != nil {
		log.Warn("failed to load gazetteer file; using built-in localities", "error", err, "path", path)
		return engine.NewGazetteer()
	}
	log.Info("gazetteer loaded", "path", path)

	return gaz
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
