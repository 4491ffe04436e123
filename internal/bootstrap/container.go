// Package bootstrap wires gateways and use cases from application properties.
// Both the HTTP server and the admin CLI build their dependencies here.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"city-api/internal/application/processor"
	"city-api/internal/domain/gateway/api"
	"city-api/internal/domain/gateway/cache"
	"city-api/internal/domain/gateway/db"
	"city-api/internal/domain/gateway/queue"
	"city-api/internal/domain/usecase/city"
	"city-api/internal/domain/usecase/health"
	"city-api/internal/domain/usecase/weather"
	"city-api/internal/infra/aws"
	dbgorm "city-api/internal/infra/database/gorm"
	"city-api/internal/infra/database/sqlc"
	"city-api/pkg/http"
	"city-api/pkg/log"
	"city-api/pkg/redis"
	"city-api/pkg/resource"
	"city-api/pkg/sqs"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	EngineSQLC = "sqlc"
	EngineGorm = "gorm"

	rateLimiterKey       = "openweather"
	rateLimiterNamespace = "city_rate_limits"
)

// Options selects the optional parts of the container
type Options struct {
	// StartWorker builds the SQS preload worker when the queue is enabled
	StartWorker bool
}

// Container holds every wired dependency
type Container struct {
	DB          *sql.DB
	Redis       *redis.Client
	Worker      *sqs.Worker
	QueueHealth *queue.QueueHealthGateway

	CityUseCase    city.UseCase
	WeatherUseCase weather.UseCase
	HealthUseCase  health.UseCase

	closers []func() error
}

// New opens the database, optional redis and queue, and builds the use cases
func New(ctx context.Context, options Options) (*Container, error) {
	c := &Container{QueueHealth: queue.NewQueueHealthGateway()}

	cityGateway, healthDBGateway, err := c.openDatabase(ctx)
	if err != nil {
		return nil, err
	}

	var cacheHealthGateway cache.HealthGateway = cache.DisabledHealthGateway{}
	var limiter api.Limiter
	if resource.GetBool("app.redis.enabled") {
		if err := c.openRedis(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
		cacheHealthGateway = cache.NewRedisHealthGateway(redis.NewHealthChecker(c.Redis))

		if tpm := resource.GetIntOrDefault("app.weather.rate-limit.tpm", 0); tpm > 0 {
			rateLimiter, err := redis.NewRateLimiter(c.Redis, rateLimiterKey,
				redis.NewRateLimiterOptions().
					WithMaxTransactionsPerMinute(tpm).
					WithNamespace(rateLimiterNamespace))
			if err != nil {
				_ = c.Close()
				return nil, fmt.Errorf("creating weather rate limiter: %w", err)
			}
			limiter = rateLimiter
		}
	}

	weatherGateway := api.NewWeatherGateway(api.WeatherGatewayConfig{
		BaseURL: resource.GetString("app.weather.remote.base-url"),
		APIKey:  resource.GetString("app.weather.api-key"),
		Units:   resource.GetString("app.weather.units"),
		Lang:    resource.GetString("app.weather.lang"),
		Limiter: limiter,
	}, http.ClientOptions{
		ReadTimeout:    durationOrDefault("app.weather.timeout", 10*time.Second),
		Logger:         http.NewZapLogger("openweather"),
		CircuitBreaker: weatherBreakerSettings(),
	})

	sourceGateway := api.NewCitySourceGateway(
		resource.GetString("app.cities.remote.base-url"),
		resource.GetString("app.cities.remote.path"),
		http.ClientOptions{
			ReadTimeout: durationOrDefault("app.cities.remote.timeout", 60*time.Second),
			Backoff:     http.DefaultBackoffConfig(),
			Logger:      http.NewZapLogger("city-source"),
		})

	queueName := resource.GetStringOrDefault("app.queue.preload-queue", "city-preload")
	var sender queue.Sender
	var sqsClient sqs.SQSClient
	if resource.GetBool("app.queue.enabled") {
		settings := aws.SettingsFromProperties()
		awsConfig, err := aws.LoadConfig(ctx, settings)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		sqsClient = aws.NewSqsClient(awsConfig, settings.Endpoint)
		sender = aws.NewSQSSenderAdapter(sqsClient)
	}

	c.CityUseCase = city.NewCityUseCase(queueName, sender, sourceGateway, cityGateway)
	c.WeatherUseCase = weather.NewWeatherUseCase(weatherGateway, cityGateway)
	c.HealthUseCase = health.NewHealthUseCase(healthDBGateway, c.QueueHealth, cacheHealthGateway)

	if options.StartWorker && sqsClient != nil {
		worker, err := sqs.NewWorker(ctx, sqsClient, queueName,
			processor.NewCityPreloadProcessor(c.CityUseCase),
			&sqs.WorkerConfig{
				PoolSize: resource.GetIntOrDefault("app.queue.pool-size", 1),
				LogLevel: sqs.ErrorLevel,
			})
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("creating preload worker: %w", err)
		}
		c.Worker = worker
		c.QueueHealth.RegisterWorker(queueName, worker)
	}

	return c, nil
}

func (c *Container) openDatabase(ctx context.Context) (db.CityGateway, db.HealthDBGateway, error) {
	config := sqlc.ConfigFromProperties()
	engine := resource.GetStringOrDefault("app.db.engine", EngineSQLC)

	if engine != EngineSQLC && engine != EngineGorm {
		return nil, nil, fmt.Errorf("unsupported database engine %q", engine)
	}
	if engine == EngineGorm && config.Driver != sqlc.DriverPostgres {
		return nil, nil, errors.New("the gorm engine requires the postgres driver")
	}

	conn, err := sqlc.Open(ctx, config)
	if err != nil {
		return nil, nil, err
	}
	c.DB = conn
	c.closers = append(c.closers, conn.Close)

	if engine == EngineGorm {
		gormDB, err := dbgorm.Open(conn)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using gorm city gateway")
		return db.NewGormCityGateway(gormDB), db.NewGormHealthDBGateway(gormDB), nil
	}

	return db.NewSQLCCityGateway(conn, db.ParseDialect(config.Driver)), db.NewSQLCHealthDBGateway(conn, config.Driver), nil
}

func (c *Container) openRedis(ctx context.Context) error {
	config := redis.NewRedisConfig().
		WithHost(resource.GetStringOrDefault("app.redis.host", "localhost")).
		WithPort(resource.GetIntOrDefault("app.redis.port", 6379)).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetIntOrDefault("app.redis.database", 0))

	client, err := redis.NewClient(config)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis unreachable at %s: %w", config.Addr(), err)
	}

	c.Redis = client
	c.closers = append(c.closers, client.Close)
	log.Info("redis connected", zap.String("addr", config.Addr()))
	return nil
}

// Close releases the connections in reverse opening order
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

func weatherBreakerSettings() *gobreaker.Settings {
	failures := uint32(resource.GetIntOrDefault("app.weather.circuit-breaker.failures", 5))
	return &gobreaker.Settings{
		Name:    "openweather",
		Timeout: durationOrDefault("app.weather.circuit-breaker.open-timeout", 30*time.Second),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
}

func durationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := resource.GetDuration(key); value > 0 {
		return value
	}
	return defaultValue
}
