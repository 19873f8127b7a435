package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hunt-wet/hunt-intel-backend/config"
	"github.com/hunt-wet/hunt-intel-backend/handlers"
	"github.com/hunt-wet/hunt-intel-backend/middleware"
)

// Dependencies holds everything required to set up routes.
type Dependencies struct {
	Config             *config.Config
	RedisClient        *redis.Client
	WeatherHandler     *handlers.WeatherHandler
	HuntHandler        *handlers.HuntHandler
	RegulationsHandler *handlers.RegulationsHandler
	LocationHandler    *handlers.LocationHandler
	HealthHandler      *handlers.HealthHandler
	Logger             *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and metrics
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		weatherRoutes := v1.Group("/weather")
		{
			// The pattern-match endpoint fans out to the paid weather
			// provider on cache misses, so it gets the rate limiter.
			if deps.RedisClient != nil {
				window := time.Duration(deps.Config.RateLimit.WindowSeconds) * time.Second
				weatherRoutes.Use(middleware.QueryRateLimiter(
					deps.RedisClient,
					deps.Config.RateLimit.RequestsPerMinute,
					window))
			}
			weatherRoutes.POST("/matches", deps.WeatherHandler.FindMatches)
			weatherRoutes.GET("/today", deps.WeatherHandler.TodayConditions)
		}

		huntRoutes := v1.Group("/hunts")
		{
			huntRoutes.POST("", deps.HuntHandler.LogHunt)
			huntRoutes.GET("", deps.HuntHandler.ListHunts)
			huntRoutes.GET("/stats", deps.HuntHandler.GetStats)
		}

		v1.GET("/regulations/:state", deps.RegulationsHandler.GetByState)
		v1.GET("/locations/zip/:zip", deps.LocationHandler.ResolveZip)
	}

	return r
}
