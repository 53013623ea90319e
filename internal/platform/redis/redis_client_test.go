package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASSWORD", "secret")

	cfg := LoadConfig()

	assert.Equal(t, Config{Host: "cache", Port: "6380", Password: "secret"}, cfg)
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "cache:6380", cfg.Addr())
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")

	cfg := LoadConfig()

	assert.False(t, cfg.Enabled())
	assert.Equal(t, "6379", cfg.Port)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// port 1 on loopback is never a Redis server
	rdb, err := NewRedisClient(ctx, Config{Host: "127.0.0.1", Port: "1"})

	assert.Error(t, err)
	assert.Nil(t, rdb)
}
