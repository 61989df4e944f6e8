package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTTL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{name: "days", raw: "7d", want: 7 * 24 * time.Hour},
		{name: "single day", raw: "1d", want: 24 * time.Hour},
		{name: "go duration", raw: "90m", want: 90 * time.Minute},
		{name: "empty uses default", raw: "", want: 7 * 24 * time.Hour},
		{name: "garbage", raw: "soon", wantErr: true},
		{name: "bad day count", raw: "xd", wantErr: true},
		{name: "zero", raw: "0d", wantErr: true},
		{name: "negative", raw: "-1h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTTL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "JWT_SECRET", "JWT_EXPIRES_IN", "DATABASE_URL", "REDIS_URL",
		"REDIS_PUBLIC_URL", "NODE_ENV", "CORS_ORIGIN", "GITHUB_API_URL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.App.Port)
	assert.Equal(t, "0.0.0.0:4000", cfg.App.Addr())
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgresql://localhost/funify", cfg.Postgres.DSN)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, "localhost:6379", cfg.Redis.Options.Addr)
	assert.Equal(t, cfg.Redis.URL, cfg.Redis.PublicURL)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIURL)
	assert.False(t, cfg.GitHub.OAuthEnabled())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("REDIS_URL", "redis://:pw@cache:6380/2")
	t.Setenv("GITHUB_CLIENT_ID", "id")
	t.Setenv("GITHUB_CLIENT_SECRET", "secret")
	t.Setenv("GITHUB_API_URL", "http://127.0.0.1:9999/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.App.Port)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "cache:6380", cfg.Redis.Options.Addr)
	assert.Equal(t, "pw", cfg.Redis.Options.Password)
	assert.Equal(t, 2, cfg.Redis.Options.DB)
	assert.True(t, cfg.GitHub.OAuthEnabled())
	assert.Equal(t, "http://127.0.0.1:9999", cfg.GitHub.APIURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("ttl", func(t *testing.T) {
		t.Setenv("JWT_EXPIRES_IN", "forever")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT_EXPIRES_IN")
	})
	t.Run("redis url", func(t *testing.T) {
		t.Setenv("REDIS_URL", "http://not-redis")
		_, err := Load()
		assert.ErrorContains(t, err, "REDIS_URL")
	})
	t.Run("port falls back", func(t *testing.T) {
		t.Setenv("PORT", "99999")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 4000, cfg.App.Port)
	})
}
