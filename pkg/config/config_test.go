package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 8081, cfg.GRPCPort)
	assert.Equal(t, "file", cfg.StorageDriver)
	assert.Equal(t, int64(50000), cfg.FreeShippingThreshold)
	assert.Equal(t, int64(5000), cfg.ShippingFee)
	assert.Equal(t, 1500*time.Millisecond, cfg.CheckoutDelay)
	assert.False(t, cfg.StrictStatusTransitions)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 10000, cfg.StoreCacheSize)
	assert.Equal(t, 30*time.Minute, cfg.StoreCacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("CHECKOUT_DELAY", "0s")
	t.Setenv("ORDER_STRICT_TRANSITIONS", "true")

	cfg := Load()

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Duration(0), cfg.CheckoutDelay)
	assert.True(t, cfg.StrictStatusTransitions)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("GRPC_PORT", "not-a-port")
	t.Setenv("TRACING_ENABLED", "maybe")
	t.Setenv("IDEMPOTENCY_TTL", "forever")

	cfg := Load()

	assert.Equal(t, 8081, cfg.GRPCPort)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, 10*time.Minute, cfg.IdempotencyTTL)
}
