package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/fpl-advisor/external/bedrock"
	"github.com/riskibarqy/fpl-advisor/external/fpl"
	"github.com/riskibarqy/fpl-advisor/internal/config"
	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/fixture"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/riskibarqy/fpl-advisor/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fpl-advisor/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fpl-advisor/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/fpl-advisor/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/fpl-advisor/internal/infrastructure/snapshot/s3store"
	"github.com/riskibarqy/fpl-advisor/internal/interfaces/httpapi"
	"github.com/riskibarqy/fpl-advisor/internal/interfaces/mcpserver"
	"github.com/riskibarqy/fpl-advisor/internal/observability"
	basecache "github.com/riskibarqy/fpl-advisor/internal/platform/cache"
	"github.com/riskibarqy/fpl-advisor/internal/platform/id"
	"github.com/riskibarqy/fpl-advisor/internal/platform/logging"
	"github.com/riskibarqy/fpl-advisor/internal/scheduler"
	"github.com/riskibarqy/fpl-advisor/internal/usecase"
)

// Container holds the services shared by the api and mcp binaries.
type Container struct {
	Recommend *usecase.RecommendService
	Batch     *usecase.BatchService
	Snapshots *usecase.SnapshotService
	Rosters   asset.RosterProvider
	FPL       *fpl.Client

	closers []func() error
}

// Build wires providers, caches, storage and services from config.
func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Container{}

	fplClient := fpl.NewClient(fpl.ClientConfig{
		BaseURL:        cfg.FPLBaseURL,
		UserAgent:      cfg.FPLUserAgent,
		Timeout:        cfg.FPLTimeout,
		MaxRetries:     cfg.FPLMaxRetries,
		RetryBackoff:   cfg.FPLRetryBackoff,
		RateLimitRPS:   cfg.FPLRateLimitRPS,
		RateLimitBurst: cfg.FPLRateLimitBurst,
		Logger:         logger,
		CircuitBreaker: cfg.FPLCircuit,
	})
	c.FPL = fplClient

	snapshotStore, err := s3store.New(ctx, s3store.Config{
		Bucket:         cfg.S3Bucket,
		Region:         cfg.S3Region,
		Endpoint:       cfg.S3Endpoint,
		AccessKey:      cfg.S3AccessKey,
		SecretKey:      cfg.S3SecretKey,
		ForcePathStyle: cfg.S3ForcePathStyle,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build snapshot store: %w", err)
	}

	var (
		rosters  asset.RosterProvider = fplClient
		fixtures fixture.Provider     = fplClient
	)
	if cfg.RosterSource == config.RosterSourceS3 {
		rosters = snapshotStore
		fixtures = snapshotStore
	}

	var invalidators []usecase.RosterInvalidator
	if cfg.RedisEnabled {
		rdb, err := redisrepo.NewClient(ctx, redisrepo.ClientConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.closers = append(c.closers, rdb.Close)
		shared := redisrepo.NewRosterCache(rosters, rdb, cfg.RedisTTL, logger)
		rosters = shared
		invalidators = append(invalidators, shared)
	}
	if cfg.CacheEnabled {
		local := cache.NewRosterProvider(rosters, basecache.NewStore[asset.Roster](cfg.CacheTTL))
		localFixtures := cache.NewFixtureProvider(fixtures, basecache.NewStore[[]fixture.Fixture](cfg.CacheTTL))
		rosters = local
		fixtures = localFixtures
		invalidators = append(invalidators, local, localFixtures)
	}
	c.Rosters = rosters

	var repo recommendation.Repository
	if cfg.DBEnabled {
		db, err := openDB(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.closers = append(c.closers, db.Close)
		repo = postgres.NewRecommendationRepository(db)
	} else {
		repo = memory.NewRecommendationRepository()
	}

	recommendSvc := usecase.NewRecommendService(
		rosters,
		fplClient,
		fixtures,
		recommendation.NewDefaultEngine(),
		id.NewUUIDGenerator(),
		logger,
	)
	recommendSvc.SetManagerProvider(fplClient)
	recommendSvc.SetGameweekResolver(fplClient)
	recommendSvc.SetRepository(repo)

	if cfg.NarrativeEnabled {
		generator, err := bedrock.NewGeneratorFromAWS(ctx, bedrock.Config{
			Enabled:   true,
			Region:    cfg.BedrockRegion,
			Models:    cfg.BedrockModels,
			MaxTokens: cfg.BedrockMaxTokens,
			Logger:    logger,
		})
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("build narrative generator: %w", err)
		}
		recommendSvc.SetNarrativeGenerator(generator)
	}

	if cfg.MetricsEnabled {
		metrics, err := observability.NewCloudWatchMetrics(ctx, cfg.MetricsRegion, cfg.MetricsNamespace, cfg.ServiceName, logger)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("build metrics publisher: %w", err)
		}
		recommendSvc.SetMetrics(metrics)
	}

	c.Recommend = recommendSvc
	c.Batch = usecase.NewBatchService(recommendSvc, cfg.BatchWorkers, logger)
	// Snapshots always read live FPL data and publish to object storage.
	c.Snapshots = usecase.NewSnapshotService(fplClient, fplClient, fplClient, snapshotStore, logger, invalidators...)

	logger.InfoContext(ctx, "app components built",
		"roster_source", cfg.RosterSource,
		"redis", cfg.RedisEnabled,
		"local_cache", cfg.CacheEnabled,
		"db", cfg.DBEnabled,
		"narrative", cfg.NarrativeEnabled,
		"metrics", cfg.MetricsEnabled,
	)
	return c, nil
}

// Close releases pooled connections in reverse order of creation.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func NewHTTPServer(cfg config.Config, c *Container, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(c.Recommend, c.Batch, c.Snapshots, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func NewMCPServer(cfg config.Config, c *Container, logger *logging.Logger) (*http.Server, error) {
	if cfg.MCPHTTPAddr == "" {
		return nil, fmt.Errorf("mcp server addr cannot be empty")
	}

	server, registry := mcpserver.NewServer(c.Recommend, cfg.ServiceVersion, logger)
	return &http.Server{
		Addr:        cfg.MCPHTTPAddr,
		Handler:     httpapi.RequestTracing(mcpserver.NewHandler(server, registry, cfg.MCPPath, cfg.MCPAPIKey)),
		ReadTimeout: cfg.ReadTimeout,
	}, nil
}

// NewScheduler returns nil when the scheduler is disabled.
func NewScheduler(cfg config.Config, c *Container, logger *logging.Logger) (*scheduler.Scheduler, error) {
	if !cfg.SchedulerEnabled {
		return nil, nil
	}
	s := scheduler.New(c.Snapshots, c.Rosters, c.FPL, logger)
	if err := s.Register(scheduler.Config{
		SnapshotSpec:  cfg.SnapshotCron,
		CacheWarmSpec: cfg.CacheWarmCron,
	}); err != nil {
		return nil, err
	}
	return s, nil
}
