package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funify/funify-api/internal/config"
)

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig(config.PostgresConfig{
		DSN:            "postgresql://funify:pw@db.internal:5432/funify",
		MaxConns:       8,
		MinConns:       2,
		ConnMaxIdleSec: 30,
		ConnMaxLifeSec: 300,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 8, cfg.MaxConns)
	assert.EqualValues(t, 2, cfg.MinConns)
	assert.Equal(t, 30*time.Second, cfg.MaxConnIdleTime)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, "db.internal", cfg.ConnConfig.Host)
	assert.Equal(t, applicationName, cfg.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, connectTimeout, cfg.ConnConfig.ConnectTimeout)
}

func TestPoolConfig_KeepsDSNOverrides(t *testing.T) {
	cfg, err := poolConfig(config.PostgresConfig{
		DSN: "postgresql://localhost/funify?application_name=migrator&connect_timeout=3",
	})
	require.NoError(t, err)
	assert.Equal(t, "migrator", cfg.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, 3*time.Second, cfg.ConnConfig.ConnectTimeout)
}

func TestPoolConfig_Errors(t *testing.T) {
	_, err := poolConfig(config.PostgresConfig{})
	assert.ErrorIs(t, err, ErrNoDSN)

	_, err = poolConfig(config.PostgresConfig{DSN: "postgresql://localhost:notaport/db"})
	assert.Error(t, err)

	cfg, err := poolConfig(config.PostgresConfig{DSN: "postgresql://localhost/funify", MaxConns: 4, MinConns: 9})
	require.NoError(t, err)
	assert.EqualValues(t, 0, cfg.MinConns)
}
