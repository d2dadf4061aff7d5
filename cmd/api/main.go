package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeloans_backend/internal/adapters/storage"
	"homeloans_backend/internal/admin"
	"homeloans_backend/internal/calendly"
	"homeloans_backend/internal/chat"
	"homeloans_backend/internal/content"
	"homeloans_backend/internal/email"
	"homeloans_backend/internal/events"
	apphttp "homeloans_backend/internal/http"
	"homeloans_backend/internal/http/router"
	"homeloans_backend/internal/leads"
	leadrepo "homeloans_backend/internal/leads/repository"
	"homeloans_backend/internal/notification"
	"homeloans_backend/internal/rates"
	"homeloans_backend/internal/scheduler"
	"homeloans_backend/migrations"
	"homeloans_backend/platform/ai/openai"
	"homeloans_backend/platform/cache"
	"homeloans_backend/platform/config"
	"homeloans_backend/platform/db"
	"homeloans_backend/platform/logger"
	"homeloans_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

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

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	rdb := initRedis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	storageSvc := initStorage(ctx, cfg, log)

	cat, err := content.Load(cfg.GetBrokerPhone())
	if err != nil {
		log.Error("failed to load content catalogue", "error", err)
		panic("failed to load content catalogue: " + err.Error())
	}

	alertQueue, closeQueue := initAlertQueue(cfg, log)

	// Event bus for decoupled communication between modules
	eventBus, drainEvents := newEventBus(log, closeQueue)
	defer drainEvents()

	val := validator.New()

	// ========================================================================
	// Domain Modules
	// ========================================================================

	ratesModule := rates.NewModule(pool, rdb, cfg.GetRatesCacheTTL(), cfg.GetDefaultFixedRate(), eventBus, val, log)
	leadsModule := leads.NewModule(pool, eventBus, storageSvc, cfg.GetMinioBucketLeadExports(), log)

	var relay chat.Sender
	if cfg.IsLLMConfigured() {
		relay = chat.NewRelay(openai.NewModel(openai.Config{
			APIKey:  cfg.GetOpenAIAPIKey(),
			BaseURL: cfg.GetOpenAIBaseURL(),
			Model:   cfg.GetOpenAIModel(),
			Timeout: cfg.GetOpenAITimeout(),
		}), cat.SystemPrompt, cfg.GetOpenAITimeout())
	} else {
		log.Warn("OPENAI_API_KEY not configured; chat relay disabled")
	}

	chatModule := chat.NewModule(cat, relay, ratesModule.Service(), leadsModule.Service(), val, log)
	calendlyModule := calendly.NewModule(cfg, log)
	adminModule := admin.NewModule(cfg, val, log)

	notificationModule := notification.New(initSender(cfg, log), leadrepo.New(pool), cfg.GetBrokerEmail(), log)
	if alertQueue != nil {
		notificationModule.SetAlertQueue(alertQueue)
	}
	notificationModule.RegisterHandlers(eventBus)

	app := &apphttp.App{
		Config:        cfg,
		Logger:        log,
		Health:        db.NewPoolAdapter(pool),
		EventBus:      eventBus,
		LLMConfigured: cfg.IsLLMConfigured(),
		Modules: []apphttp.Module{
			chatModule,
			calendlyModule,
			adminModule,
			leadsModule,
			ratesModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; rate cache and alert queue disabled")
		return nil
	}
	rdb, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis; continuing without cache", "error", err)
		return nil
	}
	return rdb
}

// initStorage returns nil when MinIO is not configured so archiving stays off.
func initStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage.StorageService {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; lead export archive disabled")
		return nil
	}
	svc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	bucket := cfg.GetMinioBucketLeadExports()
	if err := withRetry(ctx, log, "ensure lead-exports bucket", 5, 2*time.Second, func() error {
		return svc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	return svc
}

func initSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("SMTP not configured; broker alerts disabled")
		return email.NoopSender{}
	}
	return email.NewSMTPSender(cfg, cfg.GetBrokerPhone())
}

// newEventBus returns the bus and its shutdown func. Shutdown waits for
// in-flight handlers before closing the resources they publish to.
func newEventBus(log *logger.Logger, closers ...func()) (*events.InMemoryBus, func()) {
	bus := events.NewInMemoryBus(log)
	return bus, func() {
		bus.Wait()
		for _, closeFn := range closers {
			if closeFn != nil {
				closeFn()
			}
		}
	}
}

func initAlertQueue(cfg *config.Config, log *logger.Logger) (notification.AlertQueue, func()) {
	if cfg.GetRedisURL() == "" {
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize alert queue; sending inline", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}
