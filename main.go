package main

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hunt-wet/hunt-intel-backend/config"
	"github.com/hunt-wet/hunt-intel-backend/db"
	"github.com/hunt-wet/hunt-intel-backend/handlers"
	"github.com/hunt-wet/hunt-intel-backend/logger"
	huntservice "github.com/hunt-wet/hunt-intel-backend/models/hunt/service"
	regservice "github.com/hunt-wet/hunt-intel-backend/models/regulations/service"
	weatherservice "github.com/hunt-wet/hunt-intel-backend/models/weather/service"
	"github.com/hunt-wet/hunt-intel-backend/pkg/geocode"
	"github.com/hunt-wet/hunt-intel-backend/pkg/visualcrossing"
	"github.com/hunt-wet/hunt-intel-backend/router"
	"github.com/hunt-wet/hunt-intel-backend/services"
	"github.com/hunt-wet/hunt-intel-backend/store/postgres"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	if cfg.Server.Environment == config.EnvProduction {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis (rate limiting). The API runs without it.
	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{
			ServerName: cfg.Redis.Address,
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)

	// Stores
	weatherCache := postgres.NewPgWeatherCacheStore(pool)
	huntLogs := postgres.NewPgHuntLogStore(pool)

	// Outbound clients
	providerTimeout := time.Duration(cfg.Weather.TimeoutSeconds) * time.Second
	provider := visualcrossing.NewClient(
		cfg.ExternalServices.VisualCrossingKey,
		cfg.ExternalServices.VisualCrossingBaseURL,
		providerTimeout,
		visualcrossing.RetryPolicy{
			Attempts: cfg.Weather.FetchRetries,
			Backoff:  time.Duration(cfg.Weather.FetchBackoffMillis) * time.Millisecond,
		},
	)
	geocoder := geocode.NewClient(cfg.ExternalServices.OpenWeatherKey, providerTimeout)

	// Services
	historyService := weatherservice.NewHistoryService(weatherCache, huntLogs, provider, cfg.Weather.MaxMatches)
	huntService := huntservice.NewHuntService(huntLogs, historyService, nil)
	regulationsService := regservice.NewRegulationsService(regservice.NewStaticLoader(), 0, nil)
	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	r := router.SetupRouter(router.Dependencies{
		Config:             cfg,
		RedisClient:        redisClient,
		WeatherHandler:     handlers.NewWeatherHandler(historyService),
		HuntHandler:        handlers.NewHuntHandler(huntService),
		RegulationsHandler: handlers.NewRegulationsHandler(regulationsService),
		LocationHandler:    handlers.NewLocationHandler(geocoder),
		HealthHandler:      handlers.NewHealthHandler(healthService),
		Logger:             log,
	})

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
