package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstorage "github.com/mcoot/playerbase/internal/storage/redis"
)

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(context.Background(), Config{})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, StorageTypeMemory, app.StorageName)
	assert.Nil(t, app.Pinger)
	assert.Nil(t, app.Metrics)
	assert.NotNil(t, app.PlayerService)
}

func TestNewWithMetrics(t *testing.T) {
	app, err := New(context.Background(), Config{EnableMetrics: true})
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Metrics)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mr.Addr()

	app, err := New(context.Background(), Config{StorageType: StorageTypeRedis, RedisConfig: &redisCfg})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, StorageTypeRedis, app.StorageName)
	require.NotNil(t, app.Pinger)
	assert.NoError(t, app.Pinger.Ping(context.Background()))
}

func TestNewSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.db")

	app, err := New(context.Background(), Config{StorageType: StorageTypeSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, StorageTypeSQLite, app.StorageName)
	require.NotNil(t, app.Pinger)
	assert.NoError(t, app.Pinger.Ping(context.Background()))
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	cases := map[string]Config{
		"redis without config": {StorageType: StorageTypeRedis},
		"postgres without dsn": {StorageType: StorageTypePostgres},
		"sqlite without path":  {StorageType: StorageTypeSQLite},
		"unknown storage type": {StorageType: "cassandra"},
	}
	for name, cfg := range cases {
		_, err := New(context.Background(), cfg)
		assert.Error(t, err, name)
	}
}
