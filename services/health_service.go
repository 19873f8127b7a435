// Package services holds cross-cutting application services that do not
// belong to a single domain model.
package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/types"
)

// DatabasePinger is the slice of pgxpool.Pool the health check needs.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger is the slice of redis.Client the health check needs.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// HealthService aggregates dependency liveness into one report.
type HealthService struct {
	db        DatabasePinger
	redis     RedisPinger
	version   string
	startedAt time.Time
	log       *zap.SugaredLogger
}

// NewHealthService wires the health checks. Either dependency may be nil and
// is then skipped.
func NewHealthService(db DatabasePinger, redisClient RedisPinger, version string) *HealthService {
	return &HealthService{
		db:        db,
		redis:     redisClient,
		version:   version,
		startedAt: time.Now().UTC(),
		log:       logger.GetLogger(),
	}
}

// CheckHealth pings every dependency. Overall status is down if any component
// is down, degraded if any is degraded, otherwise up.
func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.ComponentHealth)
	overall := types.HealthStatusUp

	if h.db != nil {
		dbStatus := h.checkDatabase(ctx)
		components["database"] = dbStatus
		overall = worse(overall, dbStatus.Status)
	}

	if h.redis != nil {
		redisStatus := h.checkRedis(ctx)
		components["redis"] = redisStatus
		overall = worse(overall, redisStatus.Status)
	}

	return types.HealthCheck{
		Status:     overall,
		Version:    h.version,
		Timestamp:  time.Now().UTC(),
		Uptime:     time.Since(h.startedAt).Round(time.Second).String(),
		Components: components,
	}
}

func (h *HealthService) checkDatabase(ctx context.Context) types.ComponentHealth {
	if err := h.db.Ping(ctx); err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.ComponentHealth{
			Status:  types.HealthStatusDown,
			Details: "Database connection failed",
		}
	}
	return types.ComponentHealth{Status: types.HealthStatusUp}
}

func (h *HealthService) checkRedis(ctx context.Context) types.ComponentHealth {
	if err := h.redis.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		// The API works without Redis; only rate limiting degrades.
		return types.ComponentHealth{
			Status:  types.HealthStatusDegraded,
			Details: "Redis connection failed",
		}
	}
	return types.ComponentHealth{Status: types.HealthStatusUp}
}

func worse(a, b types.HealthStatus) types.HealthStatus {
	if a == types.HealthStatusDown || b == types.HealthStatusDown {
		return types.HealthStatusDown
	}
	if a == types.HealthStatusDegraded || b == types.HealthStatusDegraded {
		return types.HealthStatusDegraded
	}
	return types.HealthStatusUp
}
