package persistence

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funify/funify-api/internal/config"
)

func TestClientOptions_FillsDefaults(t *testing.T) {
	parsed, err := redis.ParseURL("redis://:secret@cache.internal:6380/2")
	require.NoError(t, err)

	opts := clientOptions(config.RedisConfig{Options: parsed})
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, applicationName, opts.ClientName)
	assert.Equal(t, redisDialTimeout, opts.DialTimeout)
	assert.Equal(t, redisIOTimeout, opts.ReadTimeout)

	assert.Empty(t, parsed.ClientName, "parsed options must not be mutated")
}

func TestClientOptions_KeepsExplicitTimeouts(t *testing.T) {
	parsed, err := redis.ParseURL("redis://localhost:6379/0?read_timeout=1s&dial_timeout=2s")
	require.NoError(t, err)

	opts := clientOptions(config.RedisConfig{Options: parsed})
	assert.Equal(t, time.Second, opts.ReadTimeout)
	assert.Equal(t, 2*time.Second, opts.DialTimeout)
}

func TestClientOptions_NilOptions(t *testing.T) {
	opts := clientOptions(config.RedisConfig{})
	assert.Equal(t, "localhost:6379", opts.Addr)
}
