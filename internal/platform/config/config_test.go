// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/harmonia/internal/platform/config"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://harmonia@localhost:5432/harmonia")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
	t.Setenv("SENSITIVE_DATA_KEY", "a2tra2tra2tra2tra2tra2tra2tra2tra2tra2tra2s=")
}

/*
TestLoad_Defaults verifies the defaults applied when only required variables are set.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.SplitEnforceTotal)
	assert.Equal(t, 12*time.Hour, cfg.CSRFTokenTTL)
	assert.Equal(t, "harmonia.app", cfg.OriginSuffix())
}

/*
TestLoad_Overrides checks that explicit environment values win over defaults.
*/
func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SPLIT_ENFORCE_TOTAL", "true")
	t.Setenv("CSRF_TOKEN_TTL", "30m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.SplitEnforceTotal)
	assert.Equal(t, 30*time.Minute, cfg.CSRFTokenTTL)
}

/*
TestLoad_MissingRequired fails fast when a required variable is blank.
*/
func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{
		"DATABASE_URL",
		"REDIS_URL",
		"JWT_PRIVATE_KEY_PATH",
		"JWT_PUBLIC_KEY_PATH",
		"SENSITIVE_DATA_KEY",
	} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
