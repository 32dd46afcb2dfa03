package gatesdk

import (
	"context"
	"net/http"
	"net/url"
)

// Login signs in and returns where the gate sends the caller next.
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/login", req)
	if err != nil {
		return "", err
	}
	return expectRedirect(resp)
}

// Signup creates a candidate or recruiter account and signs it in.
func (c *Client) Signup(ctx context.Context, role string, req SignupRequest) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/signup/"+url.PathEscape(role), req)
	if err != nil {
		return "", err
	}
	return expectRedirect(resp)
}

func (c *Client) Logout(ctx context.Context) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return "", err
	}
	return expectRedirect(resp)
}

// CompleteProfile picks a role for a federated account.
func (c *Client) CompleteProfile(ctx context.Context, role string) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/complete-profile", CompleteProfileRequest{Role: role})
	if err != nil {
		return "", err
	}
	return expectRedirect(resp)
}

// Section fetches a guarded section such as "/admin" or "/dashboard".
func (c *Client) Section(ctx context.Context, path string) (*SectionResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out SectionResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Page fetches a form page such as "/login".
func (c *Client) Page(ctx context.Context, path string) (*PageResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out PageResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveRecruiter approves a recruiter account. Admin only, at aal2.
func (c *Client) ApproveRecruiter(ctx context.Context, userID string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/admin/recruiters/"+url.PathEscape(userID)+"/approve", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) GetPreference(ctx context.Context, key string) (*PreferenceResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/preferences/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, err
	}

	var out PreferenceResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetPreference(ctx context.Context, key, value string) (*PreferenceResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/v1/preferences/"+url.PathEscape(key), PreferenceRequest{Value: value})
	if err != nil {
		return nil, err
	}

	var out PreferenceResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
