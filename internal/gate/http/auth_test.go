package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/talentgate/internal/gate/domain"
	"github.com/aussiebroadwan/talentgate/pkg/gatesdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginLogout(t *testing.T) {
	ts := newTestServer(t)

	form := url.Values{"email": {"Alice@Example.com"}, "password": {"correct horse battery"}, "full_name": {"Alice"}}
	rec := ts.do(t, http.MethodPost, "/signup/candidate", "", form)
	requireRedirect(t, rec, "/candidate")
	c := sessionCookie(rec)
	require.NotNil(t, c)
	require.True(t, c.HttpOnly)

	rec = ts.do(t, http.MethodGet, "/candidate", c.Value, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/signup/candidate", "", form)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/login", "", url.Values{"email": {"alice@example.com"}, "password": {"wrong password"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, gatesdk.ErrorCodeInvalidCredentials, decode[gatesdk.APIError](t, rec).Code)

	rec = ts.do(t, http.MethodPost, "/login", "", url.Values{
		"email":    {"alice@example.com"},
		"password": {"correct horse battery"},
		"redirect": {"/candidate/applications"},
	})
	requireRedirect(t, rec, "/candidate/applications")
	token := sessionCookie(rec).Value

	rec = ts.do(t, http.MethodPost, "/logout", token, nil)
	requireRedirect(t, rec, "/login")
	require.Equal(t, -1, sessionCookie(rec).MaxAge)

	requireRedirect(t, ts.do(t, http.MethodGet, "/candidate", token, nil), "/login")
}

func TestLoginAcceptsJSON(t *testing.T) {
	ts := newTestServer(t)
	requireRedirect(t, ts.do(t, http.MethodPost, "/signup/recruiter", "", url.Values{
		"email": {"rec@example.com"}, "password": {"correct horse battery"},
	}), "/recruiter")

	rec := ts.doJSON(t, http.MethodPost, "/login", "", gatesdk.LoginRequest{
		Email:    "rec@example.com",
		Password: "correct horse battery",
		Redirect: "https://evil.example/",
	})
	requireRedirect(t, rec, "/recruiter")
}

func TestSignupRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/signup/candidate", "", url.Values{"email": {"nope"}, "password": {"correct horse battery"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, gatesdk.ErrorCodeInvalidEmail, decode[gatesdk.APIError](t, rec).Code)

	rec = ts.do(t, http.MethodPost, "/signup/recruiter", "", url.Values{"email": {"a@example.com"}, "password": {"short"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, gatesdk.ErrorCodeWeakPassword, decode[gatesdk.APIError](t, rec).Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	ts := newTestServer(t)
	form := url.Values{"email": {"victim@example.com"}, "password": {"guess guess guess"}}

	var last int
	for range 6 {
		last = ts.do(t, http.MethodPost, "/login", "", form).Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}

func TestLoginLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	ts := newTestServer(t)
	form := url.Values{"email": {"victim@example.com"}, "password": {"guess guess guess"}}

	var last int
	for i := range 6 {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)
		last = rec.Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}

func TestMFAEnrolmentAPI(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signIn(t, domain.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/v1/mfa/totp/enroll", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/mfa/totp/cancel", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/mfa/totp/enroll", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	enrol := decode[gatesdk.TOTPEnrollResponse](t, rec)
	require.NotEmpty(t, enrol.Secret)

	code, err := totp.GenerateCode(enrol.Secret, time.Now())
	require.NoError(t, err)
	rec = ts.doJSON(t, http.MethodPost, "/v1/mfa/totp/verify", token, gatesdk.TOTPCodeRequest{Code: code})
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[gatesdk.MFAStateResponse](t, rec)
	require.True(t, state.Enrolled)
	require.Equal(t, "aal2", state.Assurance.Current)

	// Enrolment elevated this session, so the admin section opens.
	rec = ts.do(t, http.MethodGet, "/admin", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/mfa/totp/enroll", token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.doJSON(t, http.MethodDelete, "/v1/mfa/totp", token, gatesdk.TOTPCodeRequest{Code: code})
	require.Equal(t, http.StatusNoContent, rec.Code)

	requireRedirect(t, ts.do(t, http.MethodGet, "/admin", token, nil), "/admin/mfa-required")

	rec = ts.do(t, http.MethodGet, "/v1/mfa", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decode[gatesdk.MFAStateResponse](t, rec).Enrolled)
}

func TestPreferencesAPI(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.signIn(t, domain.RoleCandidate)

	rec := ts.do(t, http.MethodGet, "/v1/preferences/mfa_banner_dismissed", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/preferences/mfa_banner_dismissed", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[gatesdk.PreferenceResponse](t, rec).Value)

	require.True(t, decode[gatesdk.SectionResponse](t, ts.do(t, http.MethodGet, "/candidate", token, nil)).ShowMFABanner)

	rec = ts.doJSON(t, http.MethodPut, "/v1/preferences/mfa_banner_dismissed", token, gatesdk.PreferenceRequest{Value: "true"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "true", decode[gatesdk.PreferenceResponse](t, rec).Value)

	require.False(t, decode[gatesdk.SectionResponse](t, ts.do(t, http.MethodGet, "/candidate", token, nil)).ShowMFABanner)

	rec = ts.doJSON(t, http.MethodPut, "/v1/preferences/theme", token, gatesdk.PreferenceRequest{Value: "dark"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
