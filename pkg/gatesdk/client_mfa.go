package gatesdk

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) MFAState(ctx context.Context) (*MFAStateResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/mfa", nil)
	if err != nil {
		return nil, err
	}

	var out MFAStateResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnrollTOTP starts enrollment. The returned secret is shown only once.
func (c *Client) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil)
	if err != nil {
		return nil, err
	}

	var out TOTPEnrollResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyTOTP confirms enrollment; the current session is elevated to aal2.
func (c *Client) VerifyTOTP(ctx context.Context, code string) (*MFAStateResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/mfa/totp/verify", TOTPCodeRequest{Code: code})
	if err != nil {
		return nil, err
	}

	var out MFAStateResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelTOTP(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/mfa/totp/cancel", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) RemoveTOTP(ctx context.Context, code string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/v1/mfa/totp", TOTPCodeRequest{Code: code})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Challenge opens a step-up challenge that returns to redirect on success.
func (c *Client) Challenge(ctx context.Context, redirect string) (*ChallengeResponse, error) {
	path := "/mfa-verify"
	if redirect != "" {
		path += "?redirect=" + url.QueryEscape(redirect)
	}
	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out ChallengeResponse
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyChallenge answers a challenge and returns where the gate sends the
// caller next.
func (c *Client) VerifyChallenge(ctx context.Context, req ChallengeVerifyRequest) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/mfa-verify", req)
	if err != nil {
		return "", err
	}
	return expectRedirect(resp)
}
