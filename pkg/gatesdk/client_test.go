package gatesdk

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFakeGate(t *testing.T) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "correct" {
			ErrInvalidCredentials.WriteError(w)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "tg_session", Value: "tok", Path: "/"})
		http.Redirect(w, r, "/candidate", http.StatusSeeOther)
	})
	mux.HandleFunc("GET /candidate", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("tg_session"); err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SectionResponse{Section: "candidate"})
	})
	mux.HandleFunc("POST /v1/mfa/totp/cancel", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestClient_RedirectsAreNotFollowed(t *testing.T) {
	t.Parallel()
	c := newFakeGate(t)

	_, err := c.Section(t.Context(), "/candidate")
	var redir *RedirectError
	require.ErrorAs(t, err, &redir)
	require.Equal(t, http.StatusSeeOther, redir.StatusCode)
	require.Equal(t, "/login", redir.Location)
}

func TestClient_LoginKeepsSessionCookie(t *testing.T) {
	t.Parallel()
	c := newFakeGate(t)

	next, err := c.Login(t.Context(), LoginRequest{Email: "a@example.com", Password: "correct"})
	require.NoError(t, err)
	require.Equal(t, "/candidate", next)

	sec, err := c.Section(t.Context(), next)
	require.NoError(t, err)
	require.Equal(t, "candidate", sec.Section)
}

func TestClient_TypedErrors(t *testing.T) {
	t.Parallel()
	c := newFakeGate(t)

	_, err := c.Login(t.Context(), LoginRequest{Email: "a@example.com", Password: "wrong"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)

	_, err = c.GetReadiness(t.Context())
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}

func TestClient_NoContent(t *testing.T) {
	t.Parallel()
	c := newFakeGate(t)

	require.NoError(t, c.CancelTOTP(t.Context()))

	err := c.RemoveTOTP(t.Context(), "123456")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
