package app

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/talentgate/pkg/gatesdk"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "root@example.com"
	adminPassword = "correct horse battery"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	cfg := Config{
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		Gate: GateConfig{
			DatabaseFile:           filepath.Join(dir, "gate.db"),
			PepperFile:             filepath.Join(dir, "pepper"),
			SigningKeyFile:         filepath.Join(dir, "keys", "signing.pem"),
			SecretKey:              "test-secret",
			Issuer:                 "talentgate-test",
			SessionTTL:             time.Hour,
			ChallengeTTL:           5 * time.Minute,
			LookupTimeout:          time.Second,
			CookieSecure:           false,
			PreferenceBackend:      PreferenceBackendSQLite,
			BootstrapAdminEmail:    adminEmail,
			BootstrapAdminPassword: adminPassword,
			BootstrapAdminName:     "Root",
		},
		Email: EmailConfig{Provider: "log", FromAddress: "gate@example.com"},
	}
	cfg.Sanitize()
	return cfg
}

func TestApplication_AdminStepUpEndToEnd(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	require.NoError(t, err)
	application.housekeepingService.Start()
	t.Cleanup(func() { require.NoError(t, application.Shutdown()) })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	client, err := gatesdk.NewClient(srv.URL)
	require.NoError(t, err)
	ctx := t.Context()

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)

	next, err := client.Login(ctx, gatesdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)
	require.Equal(t, "/admin", next)

	// No factor yet: the admin section sends the caller to MFA setup.
	_, err = client.Section(ctx, "/admin")
	var redir *gatesdk.RedirectError
	require.ErrorAs(t, err, &redir)
	require.Equal(t, "/admin/mfa-required", redir.Location)

	enrollment, err := client.EnrollTOTP(ctx)
	require.NoError(t, err)
	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)

	state, err := client.VerifyTOTP(ctx, code)
	require.NoError(t, err)
	require.True(t, state.Enrolled)
	require.Equal(t, "aal2", state.Assurance.Current)

	section, err := client.Section(ctx, "/admin")
	require.NoError(t, err)
	require.Equal(t, "admin", section.Section)
	require.NotNil(t, section.PendingApprovals)
}

func TestApplication_BootstrapOnlyOnce(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, first.closeStores())

	key, err := os.ReadFile(cfg.Gate.SigningKeyFile)
	require.NoError(t, err)

	// Second start reuses the database and signing key and skips seeding.
	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.closeStores() })

	again, err := os.ReadFile(cfg.Gate.SigningKeyFile)
	require.NoError(t, err)
	require.Equal(t, key, again)

	empty, err := second.db.Users().IsEmpty(t.Context())
	require.NoError(t, err)
	require.False(t, empty)
}

func TestApplication_RejectsUnreachableRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.Gate.PreferenceBackend = PreferenceBackendRedis
	cfg.Redis.Addr = "127.0.0.1:1"

	_, err := New(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis")
}

func TestApplication_RateLimitsFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Limits.Login = httpx.RateLimit{Requests: 1, Window: time.Hour, Burst: 1}

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.closeStores() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	client, err := gatesdk.NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Login(t.Context(), gatesdk.LoginRequest{Email: adminEmail, Password: "wrong password"})
	require.Error(t, err)

	_, err = client.Login(t.Context(), gatesdk.LoginRequest{Email: adminEmail, Password: "wrong password"})
	var apiErr *gatesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 429, apiErr.StatusCode)
}
