// Package strava is the authenticated client for the Strava v3 API.
//
// Every non-2xx response becomes a typed error (see errors.go); the client
// never retries. Retries, if any, are the task-queue substrate's job via
// at-least-once redelivery of the enclosing enrichment job.
package strava

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://www.strava.com/api/v3"

// Client issues calls against the Strava API. The supplied http.Client is
// expected to carry an OAuth bearer transport for authenticated endpoints.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTP:    httpClient,
	}
}

// Call issues a form-encoded request and decodes the JSON response into out.
// Status mapping: 200 decode, 401 NotAuthenticatedError, 402
// PaidFeatureError, 404 NotFoundError, anything else GenericError.
func (c *Client) Call(ctx context.Context, method, path string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s", c.BaseURL, strings.TrimPrefix(path, "/"))

	var body io.Reader
	if len(params) > 0 {
		if method == http.MethodGet {
			endpoint += "?" + params.Encode()
		} else {
			body = strings.NewReader(params.Encode())
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return c.doJSON(req, out)
}

// Athlete fetches the authenticated athlete's detail.
func (c *Client) Athlete(ctx context.Context) (*SummaryAthlete, error) {
	var athlete SummaryAthlete
	if err := c.Call(ctx, http.MethodGet, "athlete", nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// Activity fetches the full detail for one activity. A response that does
// not carry an activity ID is a ValidationError, not a silent default.
func (c *Client) Activity(ctx context.Context, activityID int64) (*DetailedActivity, error) {
	var activity DetailedActivity
	if err := c.Call(ctx, http.MethodGet, fmt.Sprintf("activities/%d", activityID), nil, &activity); err != nil {
		return nil, err
	}
	if activity.ID == 0 {
		return nil, &ValidationError{Reason: "activity detail missing id"}
	}
	return &activity, nil
}

// UpdateActivity issues a PUT with a partial field set; only fields the
// caller set on patch are sent. Returns the updated representation.
func (c *Client) UpdateActivity(ctx context.Context, activityID int64, patch UpdatableActivity) (*DetailedActivity, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activity patch: %w", err)
	}

	endpoint := fmt.Sprintf("%s/activities/%d", c.BaseURL, activityID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var updated DetailedActivity
	if err := c.doJSON(req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ExchangeCode swaps an authorization code for a credential triple. Used by
// the account-linking callback; the response carries the athlete summary.
func (c *Client) ExchangeCode(ctx context.Context, clientID, clientSecret, code string) (*TokenResponse, error) {
	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("client_secret", clientSecret)
	params.Set("code", code)
	params.Set("grant_type", "authorization_code")

	var token TokenResponse
	if err := c.Call(ctx, http.MethodPost, "oauth/token", params, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, &ValidationError{Reason: "token response missing access_token"}
	}
	return &token, nil
}

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("strava request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		slog.Debug("Strava call failed", "url", req.URL.String(), "status", resp.StatusCode)
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	return nil
}

// classifyStatus reproduces the exact status-code taxonomy the rest of the
// pipeline depends on.
func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return &NotAuthenticatedError{}
	case resp.StatusCode == http.StatusPaymentRequired:
		return &PaidFeatureError{}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{URL: resp.Request.URL.String()}
	default:
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &GenericError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(bodyBytes), maxErrorBodySize),
		}
	}
}
