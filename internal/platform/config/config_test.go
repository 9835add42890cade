// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/characters-gateway/internal/platform/apperr"
	"github.com/taibuivan/characters-gateway/internal/platform/config"
)

/*
TestLoad_Defaults verifies the zero-configuration startup values.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", config.EnvDevelopment)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://knautiluz-characters.herokuapp.com", cfg.UpstreamBaseURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, time.Hour, cfg.PersistedQueryTTL)
	assert.Equal(t, config.CacheBackendMemory, cfg.CacheBackend)
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_FromEnvironment maps the documented variables.
*/
func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("UPSTREAM_TIMEOUT", "750ms")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_HOSTNAME", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 750*time.Millisecond, cfg.UpstreamTimeout)
	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.Equal(t, "6380", cfg.RedisPort)
	assert.Equal(t, "secret", cfg.RedisPassword)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

/*
TestLoad_Invalid rejects unknown backends and modes with field details.
*/
func TestLoad_Invalid(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("CACHE_BACKEND", "disk")

	_, err := config.Load()
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)

	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{"ENVIRONMENT", "CACHE_BACKEND"}, fields)
}
