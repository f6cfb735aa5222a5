package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8082", cfg.HTTPPort)
	assert.Equal(t, "9092", cfg.GRPCPort)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "jobtracker.db", cfg.SQLitePath)
	assert.Equal(t, "LinkedIn", cfg.PremiumSource)
	assert.Equal(t, "0 9 * * *", cfg.DigestSchedule)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PREMIUM_SOURCE", "Naukri")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.StorageDriver)
	assert.Equal(t, "Naukri", cfg.PremiumSource)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_FailFast(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres"}, "DATABASE_URL is required"},
		{"redis without url", map[string]string{"STORAGE_DRIVER": "redis"}, "REDIS_URL is required"},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "dynamo"}, "STORAGE_DRIVER must be one of"},
		{"bad schedule", map[string]string{"DIGEST_SCHEDULE": "every morning"}, "DIGEST_SCHEDULE"},
		{"lowercase premium source", map[string]string{"PREMIUM_SOURCE": "linkedin"}, `PREMIUM_SOURCE must be one of LinkedIn, Naukri, Indeed, got "linkedin"`},
		{"unknown premium source", map[string]string{"PREMIUM_SOURCE": "Monster"}, "PREMIUM_SOURCE must be one of"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}
