package di

import (
	"context"
	"fmt"
	"time"

	"BarPulse/internal/domain/repository"
	apihandler "BarPulse/internal/handler/api"
	internalrepo "BarPulse/internal/repository"
	"BarPulse/internal/service/projectx"
	"BarPulse/internal/usecase"
	"BarPulse/pkg/cache"
	pkgch "BarPulse/pkg/clickhouse"
	"BarPulse/pkg/config"
	pkgkafka "BarPulse/pkg/kafka"
	applogger "BarPulse/pkg/logger"
	"BarPulse/pkg/metrics"
	"BarPulse/pkg/server"
)

// ProvideLogger creates the structured logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache backend: layered Redis+memory when Redis
// is enabled, plain in-memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize)), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}

	return cache.NewLayeredCache(redisCache,
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
	), nil
}

// ProvideProjectXClient creates the upstream brokerage API client.
func ProvideProjectXClient(cfg *config.Config, logger *applogger.Logger, m repository.Metrics) *projectx.Client {
	return projectx.NewClient(cfg, logger, m)
}

// ProvideBarSource exposes the upstream client as the bar source.
func ProvideBarSource(client *projectx.Client) repository.BarSource {
	return client
}

// ProvideTradeSource exposes the upstream client as the trade source.
func ProvideTradeSource(client *projectx.Client) repository.TradeSource {
	return client
}

// ProvideContractResolver wraps the upstream client with a cached resolver.
func ProvideContractResolver(client *projectx.Client, c cache.Service, cfg *config.Config, logger *applogger.Logger) repository.ContractResolver {
	return projectx.NewCachedResolver(client, c, cfg.Analytics.ContractCacheTTL, logger)
}

// ProvideSessionLocation loads the exchange's civil timezone.
func ProvideSessionLocation(cfg *config.Config) (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Analytics.SessionTimezone)
	if err != nil {
		return nil, fmt.Errorf("session timezone: %w", err)
	}
	return loc, nil
}

// ProvideBarService creates the bar retrieval usecase.
func ProvideBarService(
	resolver repository.ContractResolver,
	source repository.BarSource,
	c cache.Service,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.BarService {
	return usecase.NewBarService(resolver, source, c, logger,
		cfg.ProjectX.LiveFreshWindow,
		cfg.Analytics.BarsCacheTTL,
	)
}

// ProvideIndicatorService creates the indicator/VWAP usecase.
func ProvideIndicatorService(bars *usecase.BarService) *usecase.IndicatorService {
	return usecase.NewIndicatorService(bars)
}

// ProvideContextService creates the market-structure context usecase.
func ProvideContextService(
	resolver repository.ContractResolver,
	source repository.BarSource,
	loc *time.Location,
	cfg *config.Config,
	logger *applogger.Logger,
) *usecase.ContextService {
	return usecase.NewContextService(resolver, source, loc, cfg.Analytics.SwingNeighbors, logger)
}

// ProvideTradeService creates the trade search usecase.
func ProvideTradeService(source repository.TradeSource) *usecase.TradeService {
	return usecase.NewTradeService(source)
}

// ProvideJournalStore creates the journal backend named in config and
// initializes its schema or topic connection.
func ProvideJournalStore(cfg *config.Config) (repository.JournalStore, error) {
	var store repository.JournalStore

	switch cfg.Journal.Backend {
	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithMaxConnections(10, 5),
			pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}
		store = internalrepo.NewClickHouseJournalStore(client.DB())
	case "kafka":
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Kafka.Brokers),
			pkgkafka.WithCompression(cfg.Kafka.Compression),
			pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
			pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
			pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
			pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
			pkgkafka.WithHashByKey(true),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		store = internalrepo.NewKafkaJournalStore(producer, cfg.Kafka.Topic)
	default:
		return nil, fmt.Errorf("unknown journal backend %q", cfg.Journal.Backend)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// ProvideJournalService creates the journal usecase.
func ProvideJournalService(store repository.JournalStore, logger *applogger.Logger) *usecase.JournalService {
	return usecase.NewJournalService(store, logger)
}

// ProvideHandlers bundles the HTTP route groups.
func ProvideHandlers(
	logger *applogger.Logger,
	indicators *usecase.IndicatorService,
	ctxSvc *usecase.ContextService,
	trades *usecase.TradeService,
	journal *usecase.JournalService,
) *apihandler.Handlers {
	return apihandler.NewHandlers(
		apihandler.NewAnalyticsHandler(logger, indicators, ctxSvc),
		apihandler.NewDataHandler(logger, indicators, trades, journal),
	)
}

// ProvideApp creates the application server and registers shutdown closers.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handlers *apihandler.Handlers,
	store repository.JournalStore,
) *server.App {
	app := server.New(cfg, logger, handlers)
	app.AddCloser(store)
	return app
}
