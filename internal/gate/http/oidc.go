package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/talentgate/internal/gate/oidc"
	"github.com/aussiebroadwan/talentgate/internal/gate/service"
	"github.com/aussiebroadwan/talentgate/pkg/cryptox"
	"github.com/aussiebroadwan/talentgate/pkg/gatesdk"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
)

const (
	stateCookie = "tg_oidc_state"
	nonceCookie = "tg_oidc_nonce"
)

// OIDCHandler runs the authorization code flow against an external IdP.
type OIDCHandler struct {
	Provider        oidc.Provider
	IdentityService *service.IdentityService
	Cookies         CookieConfig
}

// HandleStart handles GET /auth/oidc/start
//
//	@Summary		Start federated login
//	@Description	Redirects to the identity provider with fresh state and nonce values.
//	@Tags			Auth
//	@Success		303	"Redirect to the identity provider"
//	@Router			/auth/oidc/start [get].
func (h *OIDCHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		gatesdk.ErrServerError.WriteError(w)
		return
	}
	nonce, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		gatesdk.ErrServerError.WriteError(w)
		return
	}

	http.SetCookie(w, shortCookie(stateCookie, state, h.Cookies.Secure))
	http.SetCookie(w, shortCookie(nonceCookie, nonce, h.Cookies.Secure))
	// The IdP only ever sees the hash; the raw nonce stays in the cookie.
	httpx.SeeOther(w, r, h.Provider.AuthCodeURL(state, cryptox.FingerprintToken(nonce)))
}

// HandleCallback handles GET /auth/callback
//
//	@Summary		Federated login callback
//	@Description	Exchanges the authorization code for a session. Returning users are matched on the provider's subject. On first sign-in
//	@Description	the provider must have verified the email; the identity is then linked to the account with that email or to a new one with no role.
//	@Tags			Auth
//	@Param			code	query	string	true	"Authorization code"
//	@Param			state	query	string	true	"State issued by /auth/oidc/start"
//	@Success		303		"Redirect to role home or /complete-profile"
//	@Failure		400		{object}	gatesdk.APIError	"State mismatch, provider error or unverified email"
//	@Failure		409		{object}	gatesdk.APIError	"Account already linked to another identity at this provider"
//	@Router			/auth/callback [get].
func (h *OIDCHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	q := r.URL.Query()

	state, stateErr := r.Cookie(stateCookie)
	nonce, nonceErr := r.Cookie(nonceCookie)

	// Single use: drop them before anything is written.
	for _, name := range []string{stateCookie, nonceCookie} {
		c := shortCookie(name, "", h.Cookies.Secure)
		c.MaxAge = -1
		http.SetCookie(w, c)
	}

	if e := q.Get("error"); e != "" {
		log.Info("identity provider returned error", "error", e)
		gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeAccessDenied, "identity provider denied the request").WriteError(w)
		return
	}
	if stateErr != nil || subtle.ConstantTimeCompare([]byte(state.Value), []byte(q.Get("state"))) != 1 {
		gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeInvalidRequest, "state mismatch").WriteError(w)
		return
	}
	if nonceErr != nil {
		gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeInvalidRequest, "missing nonce").WriteError(w)
		return
	}

	id, err := h.Provider.Exchange(ctx, q.Get("code"), cryptox.FingerprintToken(nonce.Value))
	if err != nil {
		if errors.Is(err, oidc.ErrInvalidNonce) {
			log.Warn("oidc nonce mismatch")
		} else {
			log.Warn("oidc code exchange failed", "err", err)
		}
		gatesdk.NewAPIError(http.StatusBadRequest, gatesdk.ErrorCodeInvalidRequest, "code exchange failed").WriteError(w)
		return
	}

	token, u, err := h.IdentityService.LoginWithIdentity(ctx, id)
	if err != nil {
		writeServiceError(w, r, "federated login", err)
		return
	}

	log.Info("user logged in", "user_id", u.ID, "method", "oidc")
	h.Cookies.set(w, token)
	httpx.SeeOther(w, r, landing(u.Role, ""))
}
