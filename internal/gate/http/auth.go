package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/talentgate/internal/gate/access"
	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/internal/gate/service"
	"github.com/aussiebroadwan/talentgate/pkg/gatesdk"
	"github.com/aussiebroadwan/talentgate/pkg/httpx"
	"github.com/aussiebroadwan/talentgate/pkg/slogx"
)

// AuthHandler serves password login, signup, logout and profile completion.
type AuthHandler struct {
	IdentityService *service.IdentityService
	SessionService  *service.SessionService
	Cookies         CookieConfig
	OIDCEnabled     bool
}

// landing picks where a freshly signed-in user goes: a local redirect if one
// was asked for, otherwise the role's home.
func landing(role domain.Role, redirect string) string {
	if role != domain.RoleUnset && httpx.IsLocalPath(redirect) {
		return redirect
	}
	if home, ok := access.Home(role); ok {
		return home
	}
	return access.PathLogin
}

// HandleLoginPage handles GET /login
//
//	@Summary		Login page
//	@Description	Describes the login form. Signed-in callers are redirected to their home by the gate.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	gatesdk.PageResponse
//	@Success		303	"Signed in: redirect to role home"
//	@Router			/login [get].
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	page := gatesdk.PageResponse{Page: "login", Actions: []string{"POST /login"}}
	if h.OIDCEnabled {
		page.Actions = append(page.Actions, "GET /auth/oidc/start")
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

// HandleLogin handles POST /login
//
//	@Summary		Password login
//	@Description	Checks the password, sets the session cookie and redirects to the role home.
//	@Tags			Auth
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body	gatesdk.LoginRequest	true	"Credentials"
//	@Success		303	"Redirect to role home or the requested local path"
//	@Failure		400	{object}	gatesdk.APIError	"Malformed request"
//	@Failure		401	{object}	gatesdk.APIError	"Invalid email or password"
//	@Failure		429	{object}	gatesdk.APIError	"Rate limited"
//	@Router			/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req gatesdk.LoginRequest
	err := bind(w, r, &req, func(v url.Values) {
		req.Email = v.Get("email")
		req.Password = v.Get("password")
		req.Redirect = v.Get("redirect")
	})
	if err != nil || req.Email == "" || req.Password == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	token, u, err := h.IdentityService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, "login", err)
		return
	}

	slogx.FromContext(r.Context()).Info("user logged in", "user_id", u.ID)
	h.Cookies.set(w, token)
	httpx.SeeOther(w, r, landing(u.Role, req.Redirect))
}

// HandleSignupPage handles GET /signup
//
//	@Summary	Signup page
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	gatesdk.PageResponse
//	@Router		/signup [get].
func (h *AuthHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, gatesdk.PageResponse{
		Page:    "signup",
		Actions: []string{"POST /signup/candidate", "POST /signup/recruiter"},
	})
}

// HandleSignup handles POST /signup/candidate and POST /signup/recruiter
//
//	@Summary		Create an account
//	@Description	Creates a candidate or recruiter account and signs it in. Recruiters start unapproved.
//	@Tags			Auth
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body	gatesdk.SignupRequest	true	"Account details"
//	@Success		303	"Redirect to role home"
//	@Failure		400	{object}	gatesdk.APIError	"Invalid email or weak password"
//	@Failure		409	{object}	gatesdk.APIError	"Email already registered"
//	@Router			/signup/candidate [post]
//	@Router			/signup/recruiter [post].
func (h *AuthHandler) HandleSignup(role domain.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gatesdk.SignupRequest
		err := bind(w, r, &req, func(v url.Values) {
			req.Email = v.Get("email")
			req.Password = v.Get("password")
			req.FullName = v.Get("full_name")
		})
		if err != nil {
			gatesdk.ErrInvalidRequest.WriteError(w)
			return
		}

		token, u, err := h.IdentityService.Signup(r.Context(), service.SignupRequest{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
			Role:     role,
		})
		if err != nil {
			writeServiceError(w, r, "signup", err)
			return
		}

		slogx.FromContext(r.Context()).Info("user signed up", "user_id", u.ID, "role", u.Role.String())
		h.Cookies.set(w, token)
		httpx.SeeOther(w, r, landing(u.Role, ""))
	})
}

// HandleLogout handles POST /logout
//
//	@Summary		Sign out
//	@Description	Revokes the session and clears the cookie. Always redirects to the login page.
//	@Tags			Auth
//	@Success		303	"Redirect to /login"
//	@Router			/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if subject := subjectFrom(ctx); subject != nil {
		if sess, err := subject.Session(ctx); err == nil {
			if err := h.SessionService.SignOut(ctx, sess.ID); err != nil {
				slogx.FromContext(ctx).Warn("failed to revoke session", "session_id", sess.ID, "err", err)
			}
		}
	}
	h.Cookies.clear(w)
	httpx.SeeOther(w, r, access.PathLogin)
}

// HandleCompleteProfilePage handles GET /complete-profile
//
//	@Summary		Profile completion page
//	@Description	Lists the roles a user with no role may choose. Users with a role are sent home.
//	@Tags			Profile
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	gatesdk.PageResponse
//	@Success		303	"Role already set: redirect to role home. No session: redirect to /login"
//	@Router			/complete-profile [get].
func (h *AuthHandler) HandleCompleteProfilePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := subjectFrom(ctx).Profile(ctx)
	if err != nil {
		profileError(w, r, err)
		return
	}
	if p.Role != domain.RoleUnset {
		httpx.SeeOther(w, r, landing(p.Role, ""))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, gatesdk.PageResponse{
		Page:    "complete-profile",
		Actions: []string{"POST /complete-profile"},
		Choices: []string{string(domain.RoleCandidate), string(domain.RoleRecruiter)},
	})
}

// HandleCompleteProfile handles POST /complete-profile
//
//	@Summary		Choose a role
//	@Description	Sets the first role of a user whose role is unset, then redirects to its home.
//	@Tags			Profile
//	@Security		SessionCookie
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body	gatesdk.CompleteProfileRequest	true	"Role"
//	@Success		303	"Redirect to role home"
//	@Failure		400	{object}	gatesdk.APIError	"Role cannot be self-selected"
//	@Failure		409	{object}	gatesdk.APIError	"Role already set"
//	@Router			/complete-profile [post].
func (h *AuthHandler) HandleCompleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req gatesdk.CompleteProfileRequest
	if err := bind(w, r, &req, func(v url.Values) { req.Role = v.Get("role") }); err != nil {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil || role == domain.RoleUnset {
		writeServiceError(w, r, "complete profile", service.ErrRoleNotSelectable)
		return
	}

	sess, err := subjectFrom(ctx).Session(ctx)
	if err != nil {
		gatesdk.ErrUnauthenticated.WriteError(w)
		return
	}
	if err := h.IdentityService.CompleteProfile(ctx, sess.UserID, role); err != nil {
		writeServiceError(w, r, "complete profile", err)
		return
	}
	httpx.SeeOther(w, r, landing(role, ""))
}

// profileError answers a failed profile lookup on an API route.
func profileError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, access.ErrNoProfile) || errors.Is(err, access.ErrNoSession) {
		gatesdk.ErrUnauthenticated.WriteError(w)
		return
	}
	slogx.FromContext(r.Context()).Warn("profile lookup failed", "err", err)
	gatesdk.ErrServerError.WriteError(w)
}
