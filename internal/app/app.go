package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"modelgate/config"
	"modelgate/internal/alerting"
	"modelgate/internal/api"
	"modelgate/internal/api/handlers"
	"modelgate/internal/health"
	"modelgate/internal/llmclient"
	credential_repo "modelgate/internal/repo/credential"
	mcpserver_repo "modelgate/internal/repo/mcpserver"
	"modelgate/pkg/logger"
	"modelgate/pkg/postgres"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func Run(cfg config.Config) error {
	logger.Setup(logger.Options{Level: cfg.LogLevel, Console: cfg.LogConsole})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	modelCfg, err := config.LoadModelConfig(cfg.ModelConfigPath)
	if err != nil {
		return fmt.Errorf("app - Run - config.LoadModelConfig: %w", err)
	}
	endpoints, err := endpointsFromConfig(modelCfg)
	if err != nil {
		return fmt.Errorf("app - Run - endpointsFromConfig: %w", err)
	}

	var (
		dbPinger          health.Pinger
		credentialHandler *handlers.CredentialHandler
		mcpServerHandler  *handlers.McpServerHandler
	)
	if cfg.PgURL != "" {
		pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
		if err != nil {
			return fmt.Errorf("app - Run - postgres.New: %w", err)
		}
		defer pool.Close()

		if err := ApplyMigrations(cfg.PgURL, MIGRATION_FS); err != nil {
			return fmt.Errorf("app - Run - ApplyMigrations: %w", err)
		}

		dbPinger = pool
		credentialHandler = handlers.NewCredentialHandler(credential_repo.NewPgCredentialRepo(pool))
		mcpServerHandler = handlers.NewMcpServerHandler(mcpserver_repo.NewPgMcpServerRepo(pool))
	}

	var cachePinger health.CachePinger
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("app - Run - redis.ParseURL: %w", err)
		}
		client := redis.NewClient(redisOpts)
		defer client.Close()
		cachePinger = &redisCache{client: client}
	}

	var sink alerting.Sink = alerting.NopSink{}
	if len(cfg.KafkaBrokers) > 0 {
		sink = alerting.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaAlertsTopic)
	}
	dispatcher := alerting.NewDispatcher(sink, cfg.AlertQueueSize)

	orch := health.NewOrchestrator(health.NewProber(llmclient.New()), cfg.HealthCheckTimeout)

	var sched *health.Scheduler
	if cfg.BackgroundHealthChecks {
		sched = health.NewScheduler(orch, endpoints, cfg.HealthCheckInterval, dispatcher)
	}

	service := health.NewService(
		endpoints,
		cfg.CLIModel,
		orch,
		sched,
		health.NewReadinessCache(cfg.DBHealthCacheTTL),
		dbPinger,
		cachePinger,
	)

	engine := api.NewGinEngine()
	router := api.NewRouter(handlers.NewHealthHandler(service), credentialHandler, mcpServerHandler, cfg.MasterKey)
	router.SetUp(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return dispatcher.Run(gctx)
	})

	if sched != nil {
		g.Go(func() error {
			slog.Info("Starting background health checks",
				slog.Duration("interval", cfg.HealthCheckInterval),
				slog.Int("endpoints", len(endpoints)))
			return sched.Run(gctx)
		})
	}

	g.Go(func() error {
		slog.Info("Starting HTTP server", slog.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// endpointsFromConfig converts the YAML model list into probe endpoints.
func endpointsFromConfig(modelCfg config.ModelConfig) ([]health.Endpoint, error) {
	endpoints := make([]health.Endpoint, 0, len(modelCfg.ModelList))
	for _, entry := range modelCfg.ModelList {
		mode, err := health.ParseProbeMode(entry.Mode)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", entry.ModelName, err)
		}
		endpoints = append(endpoints, health.Endpoint{
			Model:    entry.ModelName,
			Provider: entry.Provider,
			Mode:     mode,
			Params:   entry.Params,
		})
	}
	return endpoints, nil
}

// redisCache adapts the redis client to the readiness cache descriptor.
type redisCache struct {
	client *redis.Client
}

func (r *redisCache) Type() string { return "redis" }

func (r *redisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
