package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/notify"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Preference backends.
const (
	PreferenceBackendSQLite = "sqlite"
	PreferenceBackendRedis  = "redis"
)

type Config struct {
	Env                  string        `env:"ENV"                   envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	// TrustedProxies are IPs or CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	Gate   GateConfig   `envPrefix:"GATE_"`
	Redis  RedisConfig  `envPrefix:"REDIS_"`
	OIDC   OIDCConfig   `envPrefix:"OIDC_"`
	Email  EmailConfig
	Limits LimitsConfig `envPrefix:"RATELIMIT_"`
}

type GateConfig struct {
	DatabaseFile      string        `env:"DATABASE_FILE"      envDefault:"gate.db"`
	PepperFile        string        `env:"PEPPER_FILE"        envDefault:"pepper"`
	SigningKeyFile    string        `env:"SIGNING_KEY_FILE"   envDefault:"signing.pem"`
	SecretKey         string        `env:"SECRET_KEY"` // seals TOTP seeds; falls back to the pepper
	Issuer            string        `env:"ISSUER"             envDefault:"talentgate"`
	SessionTTL        time.Duration `env:"SESSION_TTL"        envDefault:"12h"`
	ChallengeTTL      time.Duration `env:"CHALLENGE_TTL"      envDefault:"5m"`
	LookupTimeout     time.Duration `env:"LOOKUP_TIMEOUT"     envDefault:"2s"`
	CookieSecure      bool          `env:"COOKIE_SECURE"      envDefault:"true"`
	PreferenceBackend string        `env:"PREFERENCE_BACKEND" envDefault:"sqlite"`

	BootstrapAdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
	BootstrapAdminName     string `env:"BOOTSTRAP_ADMIN_NAME" envDefault:"Administrator"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"       envDefault:"0"`
}

// OIDCConfig enables federated login when IssuerURL is set.
type OIDCConfig struct {
	IssuerURL    string   `env:"ISSUER_URL"`
	ClientID     string   `env:"CLIENT_ID"`
	ClientSecret string   `env:"CLIENT_SECRET"`
	RedirectURL  string   `env:"REDIRECT_URL"`
	Scopes       []string `env:"SCOPES"        envSeparator:","`
}

func (c OIDCConfig) Enabled() bool { return c.IssuerURL != "" }

type EmailConfig struct {
	Provider    string `env:"EMAIL_PROVIDER"   envDefault:"log"`
	FromAddress string `env:"EMAIL_FROM"       envDefault:"no-reply@talentgate.local"`
	FromName    string `env:"EMAIL_FROM_NAME"  envDefault:"TalentGate"`
	SendGridKey string `env:"SENDGRID_API_KEY"`
}

// LimitsConfig overrides the default limiter profiles, e.g.
// RATELIMIT_LOGIN_REQUESTS=10.
type LimitsConfig struct {
	Login    httpx.RateLimit `envPrefix:"LOGIN_"`
	MFA      httpx.RateLimit `envPrefix:"MFA_"`
	Mutation httpx.RateLimit `envPrefix:"MUTATION_"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, cfg.Validate()
}

// Sanitize normalises enum-like values and fills limiter defaults.
func (c *Config) Sanitize() {
	c.Gate.PreferenceBackend = strings.ToLower(strings.TrimSpace(c.Gate.PreferenceBackend))
	c.Email.Provider = strings.ToLower(strings.TrimSpace(c.Email.Provider))
	c.Gate.BootstrapAdminEmail = strings.TrimSpace(c.Gate.BootstrapAdminEmail)

	c.Limits.Login = c.Limits.Login.OrDefault(httpx.StrictLimit)
	c.Limits.MFA = c.Limits.MFA.OrDefault(httpx.StrictLimit)
	c.Limits.Mutation = c.Limits.Mutation.OrDefault(httpx.ModerateLimit)
}

// Validate rejects inconsistent combinations.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.Gate.SessionTTL <= 0 {
		errs = append(errs, errors.New("GATE_SESSION_TTL must be positive"))
	}
	if c.Gate.ChallengeTTL <= 0 {
		errs = append(errs, errors.New("GATE_CHALLENGE_TTL must be positive"))
	}
	if c.Gate.LookupTimeout <= 0 {
		errs = append(errs, errors.New("GATE_LOOKUP_TIMEOUT must be positive"))
	}

	switch c.Gate.PreferenceBackend {
	case PreferenceBackendSQLite:
	case PreferenceBackendRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis preference backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown GATE_PREFERENCE_BACKEND %q", c.Gate.PreferenceBackend))
	}

	if c.OIDC.Enabled() {
		if c.OIDC.ClientID == "" || c.OIDC.ClientSecret == "" || c.OIDC.RedirectURL == "" {
			errs = append(errs, errors.New("OIDC_CLIENT_ID, OIDC_CLIENT_SECRET and OIDC_REDIRECT_URL are required when OIDC_ISSUER_URL is set"))
		}
	}

	if _, err := httpx.ParseTrustedProxies(c.TrustedProxies); err != nil {
		errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %w", err))
	}

	switch c.Email.Provider {
	case notify.ProviderLog:
	case notify.ProviderSendGrid:
		if c.Email.SendGridKey == "" {
			errs = append(errs, errors.New("SENDGRID_API_KEY is required for the sendgrid email provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown EMAIL_PROVIDER %q", c.Email.Provider))
	}

	if (c.Gate.BootstrapAdminEmail == "") != (c.Gate.BootstrapAdminPassword == "") {
		errs = append(errs, errors.New("GATE_BOOTSTRAP_ADMIN_EMAIL and GATE_BOOTSTRAP_ADMIN_PASSWORD must be set together"))
	}

	return errors.Join(errs...)
}
