package app

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Equal(t, "gate.db", cfg.Gate.DatabaseFile)
	require.Equal(t, 12*time.Hour, cfg.Gate.SessionTTL)
	require.Equal(t, 5*time.Minute, cfg.Gate.ChallengeTTL)
	require.Equal(t, 2*time.Second, cfg.Gate.LookupTimeout)
	require.True(t, cfg.Gate.CookieSecure)
	require.Equal(t, PreferenceBackendSQLite, cfg.Gate.PreferenceBackend)
	require.Equal(t, "log", cfg.Email.Provider)
	require.False(t, cfg.OIDC.Enabled())

	require.Equal(t, httpx.StrictLimit, cfg.Limits.Login)
	require.Equal(t, httpx.StrictLimit, cfg.Limits.MFA)
	require.Equal(t, httpx.ModerateLimit, cfg.Limits.Mutation)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GATE_SESSION_TTL", "30m")
	t.Setenv("GATE_COOKIE_SECURE", "false")
	t.Setenv("GATE_PREFERENCE_BACKEND", " Redis ")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("OIDC_ISSUER_URL", "https://idp.example.com")
	t.Setenv("OIDC_CLIENT_ID", "gate")
	t.Setenv("OIDC_CLIENT_SECRET", "s3cret")
	t.Setenv("OIDC_REDIRECT_URL", "https://gate.example.com/auth/callback")
	t.Setenv("OIDC_SCOPES", "openid,email")
	t.Setenv("RATELIMIT_LOGIN_REQUESTS", "100")
	t.Setenv("RATELIMIT_LOGIN_WINDOW", "10s")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 30*time.Minute, cfg.Gate.SessionTTL)
	require.False(t, cfg.Gate.CookieSecure)
	require.Equal(t, PreferenceBackendRedis, cfg.Gate.PreferenceBackend)
	require.Equal(t, "cache:6379", cfg.Redis.Addr)
	require.Equal(t, 2, cfg.Redis.DB)
	require.True(t, cfg.OIDC.Enabled())
	require.Equal(t, []string{"openid", "email"}, cfg.OIDC.Scopes)
	require.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)

	require.Equal(t, 100, cfg.Limits.Login.Requests)
	require.Equal(t, 10*time.Second, cfg.Limits.Login.Window)
	require.Equal(t, httpx.StrictLimit.Burst, cfg.Limits.Login.Burst)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		t.Helper()
		cfg, err := LoadConfig()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown preference backend",
			mutate:  func(c *Config) { c.Gate.PreferenceBackend = "etcd" },
			wantErr: "GATE_PREFERENCE_BACKEND",
		},
		{
			name: "redis without address",
			mutate: func(c *Config) {
				c.Gate.PreferenceBackend = PreferenceBackendRedis
				c.Redis.Addr = ""
			},
			wantErr: "REDIS_ADDR",
		},
		{
			name:    "oidc without client",
			mutate:  func(c *Config) { c.OIDC.IssuerURL = "https://idp.example.com" },
			wantErr: "OIDC_CLIENT_ID",
		},
		{
			name: "oidc without client secret",
			mutate: func(c *Config) {
				c.OIDC.IssuerURL = "https://idp.example.com"
				c.OIDC.ClientID = "gate"
				c.OIDC.RedirectURL = "https://gate.example.com/auth/callback"
			},
			wantErr: "OIDC_CLIENT_SECRET",
		},
		{
			name:    "malformed trusted proxy",
			mutate:  func(c *Config) { c.TrustedProxies = []string{"proxy.internal"} },
			wantErr: "TRUSTED_PROXIES",
		},
		{
			name:    "sendgrid without key",
			mutate:  func(c *Config) { c.Email.Provider = "sendgrid" },
			wantErr: "SENDGRID_API_KEY",
		},
		{
			name:    "bootstrap email without password",
			mutate:  func(c *Config) { c.Gate.BootstrapAdminEmail = "root@example.com" },
			wantErr: "GATE_BOOTSTRAP_ADMIN_PASSWORD",
		},
		{
			name:    "zero lookup timeout",
			mutate:  func(c *Config) { c.Gate.LookupTimeout = 0 },
			wantErr: "GATE_LOOKUP_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
