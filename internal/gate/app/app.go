package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/access"
	httpapi "github.com/aussiebroadwan/talentgate/internal/gate/http"
	"github.com/aussiebroadwan/talentgate/internal/gate/notify"
	"github.com/aussiebroadwan/talentgate/internal/gate/oidc"
	"github.com/aussiebroadwan/talentgate/internal/gate/service"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	redisprefs "github.com/aussiebroadwan/talentgate/internal/gate/store/drivers/redis"
	"github.com/aussiebroadwan/talentgate/internal/gate/store/drivers/sqlite"
	"github.com/aussiebroadwan/talentgate/pkg/cryptox"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	"github.com/aussiebroadwan/talentgate/pkg/jwtx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion is overridden at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the gate's stores, services and HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          *sqlite.Store
	preferences store.Preferences
	redis       *redis.Client // nil unless the redis preference backend is selected
	signer      *jwtx.Signer
	sealer      *cryptox.Sealer
	notifier    notify.Sender
	provider    oidc.Provider

	sessionService      *service.SessionService
	identityService     *service.IdentityService
	mfaService          *service.MFAService
	preferenceService   *service.PreferenceService
	dashboardService    *service.DashboardService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService
	resolver            *service.SubjectResolver

	server *http.Server
	router *httpapi.Router
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "talentgate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.Gate.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.initDependencies(ctx); err != nil {
		_ = app.closeStores()
		return nil, err
	}

	app.initServices()

	if err := app.bootstrap(ctx); err != nil {
		_ = app.closeStores()
		return nil, err
	}

	if err := app.initHTTP(); err != nil {
		_ = app.closeStores()
		return nil, err
	}
	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("talentgate starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops housekeeping and closes stores.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down talentgate...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("talentgate stopped")
	return nil
}

// Handler exposes the router, mainly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.Gate.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initDependencies builds keys, the preference backend and the optional
// collaborators (email, OIDC).
func (app *Application) initDependencies(ctx context.Context) error {
	signer, err := InitSigner(app.cfg, app.logger)
	if err != nil {
		return err
	}
	app.signer = signer

	sealer, err := InitSealer(app.cfg, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize sealer: %w", err)
	}
	app.sealer = sealer

	switch app.cfg.Gate.PreferenceBackend {
	case PreferenceBackendRedis:
		app.redis = redis.NewClient(&redis.Options{
			Addr:     app.cfg.Redis.Addr,
			Password: app.cfg.Redis.Password,
			DB:       app.cfg.Redis.DB,
		})
		prefs := redisprefs.NewPreferences(app.redis)
		if err := prefs.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		app.preferences = prefs
		app.logger.Info("preferences stored in redis", "addr", app.cfg.Redis.Addr)
	default:
		app.preferences = app.db.Preferences()
	}

	notifier, err := notify.New(notify.Config{
		Provider:    app.cfg.Email.Provider,
		FromAddress: app.cfg.Email.FromAddress,
		FromName:    app.cfg.Email.FromName,
		SendGridKey: app.cfg.Email.SendGridKey,
	}, app.logger)
	if err != nil {
		return err
	}
	app.notifier = notifier

	if app.cfg.OIDC.Enabled() {
		provider, err := oidc.NewProvider(ctx, oidc.Config{
			IssuerURL:    app.cfg.OIDC.IssuerURL,
			ClientID:     app.cfg.OIDC.ClientID,
			ClientSecret: app.cfg.OIDC.ClientSecret,
			RedirectURL:  app.cfg.OIDC.RedirectURL,
			Scopes:       app.cfg.OIDC.Scopes,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize OIDC provider: %w", err)
		}
		app.provider = provider
		app.logger.Info("federated login enabled", "issuer", app.cfg.OIDC.IssuerURL)
	}

	return nil
}

func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:  app.db,
		Signer: app.signer,
		TTL:    app.cfg.Gate.SessionTTL,
	}
	app.identityService = &service.IdentityService{
		Store:    app.db,
		Sessions: app.sessionService,
		Notifier: app.notifier,
	}
	app.mfaService = &service.MFAService{
		Store:        app.db,
		Sealer:       app.sealer,
		Issuer:       app.cfg.Gate.Issuer,
		ChallengeTTL: app.cfg.Gate.ChallengeTTL,
		Notifier:     app.notifier,
	}
	app.preferenceService = &service.PreferenceService{Prefs: app.preferences}
	app.dashboardService = &service.DashboardService{
		Store:       app.db,
		Preferences: app.preferenceService,
	}
	app.bootstrapService = &service.BootstrapService{Store: app.db}
	app.resolver = service.NewSubjectResolver(
		app.sessionService,
		app.db,
		app.cfg.Gate.LookupTimeout,
		app.logger,
	)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// bootstrap seeds the first admin when configured and the database is empty.
func (app *Application) bootstrap(ctx context.Context) error {
	email := app.cfg.Gate.BootstrapAdminEmail
	if email == "" {
		return nil
	}

	ctx = slogx.WithContext(ctx, app.logger)
	u, err := app.bootstrapService.SeedAdmin(ctx, email, app.cfg.Gate.BootstrapAdminPassword, app.cfg.Gate.BootstrapAdminName)
	switch {
	case errors.Is(err, service.ErrBootstrapAlready):
		app.logger.Info("bootstrap admin skipped, users already exist")
		return nil
	case err != nil:
		return fmt.Errorf("failed to seed bootstrap admin: %w", err)
	}

	app.logger.Info("bootstrap admin created", "user_id", u.ID)
	return nil
}

func (app *Application) initHTTP() error {
	proxies, err := httpx.ParseTrustedProxies(app.cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("failed to parse trusted proxies: %w", err)
	}

	router := httpapi.NewRouter(app.signer, BuildVersion, app.db, app.logger)

	router.Policy = access.Policy{}
	router.Resolver = app.resolver
	router.SessionService = app.sessionService
	router.IdentityService = app.identityService
	router.MFAService = app.mfaService
	router.PreferenceService = app.preferenceService
	router.DashboardService = app.dashboardService
	router.OIDCProvider = app.provider // nil disables /auth/oidc/*
	router.Cookies = httpapi.CookieConfig{
		Name:   httpapi.DefaultCookieName,
		Secure: app.cfg.Gate.CookieSecure,
		TTL:    app.cfg.Gate.SessionTTL,
	}
	router.Limits = httpapi.RateLimits{
		Login:    app.cfg.Limits.Login,
		MFA:      app.cfg.Limits.MFA,
		Mutation: app.cfg.Limits.Mutation,
	}
	router.TrustedProxies = proxies
	if app.redis != nil {
		router.PreferencesPing = func(ctx context.Context) error {
			return app.redis.Ping(ctx).Err()
		}
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}

func (app *Application) closeStores() error {
	var errs []error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
