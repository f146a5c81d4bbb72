package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"STORE_URL":         "postgres://service_role@localhost:5432/app?sslmode=disable",
		"STORE_SERVICE_KEY": "s3cret",
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(baseEnv()))
	require.NoError(t, err)

	require.Equal(t, "8082", cfg.Port)
	require.Equal(t, "dev", cfg.Env)
	require.False(t, cfg.Migrate)
	require.True(t, cfg.Webhook.Compensate)
	require.Equal(t, DefaultEventTypes, cfg.Webhook.EventTypes)
	require.Equal(t, 10, cfg.Store.MaxOpenConns)
	require.Equal(t, 30*time.Minute, cfg.Store.ConnMaxLifetime)
	require.False(t, cfg.Redis.Enabled())
}

func TestFromEnvOverrides(t *testing.T) {
	env := baseEnv()
	env["PORT"] = "9000"
	env["SIGNUP_COMPENSATE"] = "false"
	env["WEBHOOK_EVENT_TYPES"] = " auth.user.created , ,"
	env["REDIS_ADDR"] = "localhost:6379"
	env["REDIS_DB"] = "2"
	env["VIEW_CACHE_TTL"] = "1m"
	env["WEBHOOK_JWT_SECRET"] = "jwt"

	cfg, err := FromEnv(envOf(env))
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Port)
	require.False(t, cfg.Webhook.Compensate)
	require.Equal(t, []string{"auth.user.created"}, cfg.Webhook.EventTypes)
	require.True(t, cfg.Redis.Enabled())
	require.Equal(t, 2, cfg.Redis.DB)
	require.Equal(t, time.Minute, cfg.Redis.ViewTTL)
	require.Equal(t, "jwt", cfg.Webhook.JWTSecret)
}

func TestFromEnvFailsFast(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing store url",
			env:     map[string]string{"STORE_SERVICE_KEY": "k"},
			wantErr: ErrMissingStoreURL,
		},
		{
			name:    "missing service key",
			env:     map[string]string{"STORE_URL": "postgres://localhost/app"},
			wantErr: ErrMissingServiceKey,
		},
		{
			name:    "no event types",
			env:     map[string]string{"STORE_URL": "postgres://localhost/app", "STORE_SERVICE_KEY": "k", "WEBHOOK_EVENT_TYPES": " , "},
			wantErr: ErrNoEventTypes,
		},
		{
			name:    "malformed boolean",
			env:     map[string]string{"STORE_URL": "postgres://localhost/app", "STORE_SERVICE_KEY": "k", "SIGNUP_COMPENSATE": "maybe"},
			wantMsg: "SIGNUP_COMPENSATE",
		},
		{
			name:    "malformed duration",
			env:     map[string]string{"STORE_URL": "postgres://localhost/app", "STORE_SERVICE_KEY": "k", "DB_CONN_MAX_LIFETIME": "forever"},
			wantMsg: "DB_CONN_MAX_LIFETIME",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(envOf(tt.env))
			require.Error(t, err)
			require.Nil(t, cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				require.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
