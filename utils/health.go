package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const healthCheckInterval = 30 * time.Second

// HealthStatus is a point-in-time snapshot of the server's dependencies,
// served on /health.
type HealthStatus struct {
	Mongo     bool            `json:"mongo"`
	Redis     map[string]bool `json:"redis"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	healthMu     sync.RWMutex
	latestHealth HealthStatus
)

// GetHealthStatus returns the most recent snapshot. Zero value until the
// monitor's first pass.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return latestHealth
}

// StartHealthMonitor probes Mongo and each named Redis client on a fixed
// interval, keeping the snapshot fresh for the health endpoint.
func StartHealthMonitor(redisClients map[string]*redis.Client, mongoClient *mongo.Client) {
	probe := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		snapshot := HealthStatus{
			Redis:     make(map[string]bool, len(redisClients)),
			CheckedAt: time.Now(),
		}
		for name, client := range redisClients {
			snapshot.Redis[name] = client.Ping(ctx).Err() == nil
		}
		snapshot.Mongo = mongoClient.Ping(ctx, readpref.Primary()) == nil

		healthMu.Lock()
		latestHealth = snapshot
		healthMu.Unlock()
	}

	go func() {
		probe()
		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()
		for range ticker.C {
			probe()
		}
	}()
}
