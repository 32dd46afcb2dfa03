package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/access"
	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/oidc"
	"github.com/aussiebroadwan/talentgate/internal/gate/service"
	"github.com/aussiebroadwan/talentgate/internal/gate/store"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	"github.com/aussiebroadwan/talentgate/pkg/jwtx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"

	_ "github.com/aussiebroadwan/talentgate/api/gate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits are the per-route-class limiter profiles.
type RateLimits struct {
	Login    httpx.RateLimit
	MFA      httpx.RateLimit
	Mutation httpx.RateLimit
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Policy            access.Policy
	Resolver          *service.SubjectResolver
	SessionService    *service.SessionService
	IdentityService   *service.IdentityService
	MFAService        *service.MFAService
	PreferenceService *service.PreferenceService
	DashboardService  *service.DashboardService
	OIDCProvider      oidc.Provider // Optional: nil disables federated login
	PreferencesPing   func(ctx context.Context) error
	Cookies           CookieConfig
	Limits            RateLimits
	TrustedProxies    httpx.TrustedProxies // peers whose forwarding headers name the client
}

func NewRouter(signer *jwtx.Signer, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Cookies:      CookieConfig{Name: DefaultCookieName, TTL: jwtx.DefaultSessionTTL},
		Limits: RateLimits{
			Login:    httpx.StrictLimit,
			MFA:      httpx.StrictLimit,
			Mutation: httpx.ModerateLimit,
		},
	}
}

// ApplyRoutes registers every route and builds the global chain. Services
// must be set first.
func (r *Router) ApplyRoutes() {
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		GateMiddleware(r.Policy, r.Resolver, r.Cookies),
	}

	r.registerAuth()
	r.registerOIDC()
	r.registerMFA()
	r.registerSections()
	r.registerPreferences()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Talentgate Access API
//	@version		0.1.0
//	@description	Role-based access control and MFA step-up for the talent network.
//	@description
//	@description	Sessions are carried in an HttpOnly cookie holding an EdDSA-signed token.
//	@description	Page routes answer 303 See Other when the caller must go elsewhere.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/talentgate
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						tg_session
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		IdentityService: r.IdentityService,
		SessionService:  r.SessionService,
		Cookies:         r.Cookies,
		OIDCEnabled:     r.OIDCProvider != nil,
	}

	// Brute force protection: IP plus the submitted email.
	loginLimit := httpx.NewLimiter(r.Limits.Login, httpx.Composite("|", r.TrustedProxies.ClientIP, httpx.FormField("email")))
	signupLimit := httpx.NewLimiter(r.Limits.Mutation, r.TrustedProxies.ClientIP)
	profileLimit := httpx.NewLimiter(r.Limits.Mutation, httpx.SessionKey)

	r.Mux.Handle("GET /login", http.HandlerFunc(h.HandleLoginPage))
	r.Mux.Handle("POST /login", httpx.Chain(http.HandlerFunc(h.HandleLogin), loginLimit.Middleware()))

	r.Mux.Handle("GET /signup", http.HandlerFunc(h.HandleSignupPage))
	r.Mux.Handle("POST /signup/candidate", httpx.Chain(h.HandleSignup(domain.RoleCandidate), signupLimit.Middleware()))
	r.Mux.Handle("POST /signup/recruiter", httpx.Chain(h.HandleSignup(domain.RoleRecruiter), signupLimit.Middleware()))

	r.Mux.Handle("POST /logout", http.HandlerFunc(h.HandleLogout))

	r.Mux.Handle("GET /complete-profile", httpx.Chain(http.HandlerFunc(h.HandleCompleteProfilePage),
		RequirePageSession(),
	))
	r.Mux.Handle("POST /complete-profile", httpx.Chain(http.HandlerFunc(h.HandleCompleteProfile),
		RequireSession(),
		profileLimit.Middleware(),
	))
}

func (r *Router) registerOIDC() {
	if r.OIDCProvider == nil {
		return
	}
	h := &OIDCHandler{
		Provider:        r.OIDCProvider,
		IdentityService: r.IdentityService,
		Cookies:         r.Cookies,
	}
	limit := httpx.NewLimiter(r.Limits.Mutation, r.TrustedProxies.ClientIP)

	r.Mux.Handle("GET /auth/oidc/start", httpx.Chain(http.HandlerFunc(h.HandleStart), limit.Middleware()))
	r.Mux.Handle("GET /auth/callback", httpx.Chain(http.HandlerFunc(h.HandleCallback), limit.Middleware()))
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	// TOTP codes are six digits; keep guessing slow per account, across
	// sessions. MFAService adds a lockout on top.
	codeLimit := httpx.NewLimiter(r.Limits.MFA, httpx.UserKey)
	mutationLimit := httpx.NewLimiter(r.Limits.Mutation, httpx.SessionKey)

	r.Mux.Handle("GET /mfa-verify", httpx.Chain(http.HandlerFunc(h.HandleChallenge),
		RequireSession(),
		mutationLimit.Middleware(),
	))
	r.Mux.Handle("POST /mfa-verify", httpx.Chain(http.HandlerFunc(h.HandleVerifyChallenge),
		RequireSession(),
		codeLimit.Middleware(),
	))

	r.Mux.Handle("GET /admin/mfa-required", httpx.Chain(http.HandlerFunc(h.HandleState),
		RequireSession(),
	))
	r.Mux.Handle("GET /v1/mfa", httpx.Chain(http.HandlerFunc(h.HandleState),
		RequireSession(),
	))

	r.Mux.Handle("POST /v1/mfa/totp/enroll", httpx.Chain(http.HandlerFunc(h.HandleEnroll),
		RequireSession(),
		mutationLimit.Middleware(),
	))
	r.Mux.Handle("POST /v1/mfa/totp/verify", httpx.Chain(http.HandlerFunc(h.HandleVerifyEnrollment),
		RequireSession(),
		codeLimit.Middleware(),
	))
	r.Mux.Handle("POST /v1/mfa/totp/cancel", httpx.Chain(http.HandlerFunc(h.HandleCancel),
		RequireSession(),
		mutationLimit.Middleware(),
	))
	r.Mux.Handle("DELETE /v1/mfa/totp", httpx.Chain(http.HandlerFunc(h.HandleRemove),
		RequireSession(),
		codeLimit.Middleware(),
	))
}

func (r *Router) registerSections() {
	for _, s := range []access.Section{
		access.SectionCandidate,
		access.SectionRecruiter,
		access.SectionSchool,
		access.SectionAdmin,
	} {
		h := &SectionHandler{Section: s, Policy: r.Policy, DashboardService: r.DashboardService}
		r.Mux.Handle("GET /"+string(s), h)
		r.Mux.Handle("GET /"+string(s)+"/", h)
	}
	r.Mux.Handle("GET "+access.PathDashboard, &SectionHandler{
		Section:          access.SectionDashboard,
		Policy:           r.Policy,
		DashboardService: r.DashboardService,
	})

	admin := &AdminHandler{Policy: r.Policy, IdentityService: r.IdentityService}
	r.Mux.Handle("POST /admin/recruiters/{id}/approve", httpx.Chain(http.HandlerFunc(admin.HandleApproveRecruiter),
		RequireSession(),
		httpx.NewLimiter(r.Limits.Mutation, httpx.SessionKey).Middleware(),
	))
}

func (r *Router) registerPreferences() {
	h := &PreferenceHandler{PreferenceService: r.PreferenceService}
	limit := httpx.NewLimiter(r.Limits.Mutation, httpx.SessionKey)

	r.Mux.Handle("GET /v1/preferences/{key}", httpx.Chain(http.HandlerFunc(h.HandleGet),
		RequireSession(),
	))
	r.Mux.Handle("PUT /v1/preferences/{key}", httpx.Chain(http.HandlerFunc(h.HandlePut),
		RequireSession(),
		limit.Middleware(),
	))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer, r.PreferencesPing))
}
