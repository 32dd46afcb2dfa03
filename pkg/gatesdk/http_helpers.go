package gatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON sends body (if any) as JSON.
func (c *Client) doJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func isRedirect(code int) bool {
	return code >= 300 && code < 400
}

// decodeJSON decodes a 200 body into target. Redirects become *RedirectError
// and error statuses become *APIError.
func decodeJSON(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if isRedirect(resp.StatusCode) {
		return &RedirectError{StatusCode: resp.StatusCode, Location: resp.Header.Get("Location")}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// expectRedirect returns the Location of a 3xx response.
func expectRedirect(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if !isRedirect(resp.StatusCode) {
		if err := parseErrorResponse(resp, bodyBytes); err != nil {
			return "", err
		}
		return "", fmt.Errorf("expected redirect, got HTTP %d", resp.StatusCode)
	}
	return resp.Header.Get("Location"), nil
}

// checkStatusNoContent returns a typed error if the response is not 204.
func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if isRedirect(resp.StatusCode) {
		return &RedirectError{StatusCode: resp.StatusCode, Location: resp.Header.Get("Location")}
	}
	bodyBytes, _ := io.ReadAll(resp.Body)
	if err := parseErrorResponse(resp, bodyBytes); err != nil {
		return err
	}
	return fmt.Errorf("expected 204, got HTTP %d", resp.StatusCode)
}
