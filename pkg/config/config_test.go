package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, NotifySinkConsole, cfg.Notify.Sink)
	assert.Equal(t, "tracker:notifications", cfg.Notify.RedisKey)
	assert.Equal(t, 2, cfg.Notify.Workers)
	assert.Equal(t, 3, cfg.Notify.Retries)
	assert.Equal(t, 2*time.Second, cfg.Notify.RetryDelay)
	assert.Equal(t, "warn", cfg.Log.CLILevel)
	assert.True(t, cfg.EnableMetrics)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("NOTIFY_SINK", " Redis ")
	v.Set("NOTIFY_WORKERS", 0)
	v.Set("NOTIFY_RETRY_DELAY", "bogus")
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	cfg := fromViper(v)

	assert.Equal(t, NotifySinkRedis, cfg.Notify.Sink)
	assert.Equal(t, 1, cfg.Notify.Workers)
	assert.Equal(t, 2*time.Second, cfg.Notify.RetryDelay)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestUnknownSinkFallsBackToConsole(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("NOTIFY_SINK", "smtp")
	assert.Equal(t, NotifySinkConsole, fromViper(v).Notify.Sink)
}
