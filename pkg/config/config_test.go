package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "host=localhost dbname=tweeter")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, NotificationStorePostgres, cfg.NotificationStore)
	assert.Equal(t, "socialmedia", cfg.MongoDatabase)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRequiresPostgres(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadNotificationStore(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "host=localhost")
	t.Setenv("ENV", "production")

	t.Setenv("NOTIFICATION_STORE", "mongo")
	t.Setenv("MONGO_URI", "")
	_, err := Load()
	assert.ErrorContains(t, err, "MONGO_URI")

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, NotificationStoreMongo, cfg.NotificationStore)
	assert.True(t, cfg.IsProduction())

	t.Setenv("NOTIFICATION_STORE", "kafka")
	_, err = Load()
	assert.ErrorContains(t, err, "kafka")
}
