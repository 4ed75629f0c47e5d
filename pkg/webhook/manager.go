package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/runtimeexceptions/server/pkg/strava"
)

// DefaultSubscriptionURL is Strava's push-subscription management endpoint.
const DefaultSubscriptionURL = "https://www.strava.com/api/v3/push_subscriptions"

// Manager drives the provider's push-subscription lifecycle. These endpoints
// use application credentials, not a runner's token: there is at most one
// subscription per application.
type Manager struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	VerifyToken  string

	// BaseURL overrides DefaultSubscriptionURL, for tests.
	BaseURL string
	HTTP    *http.Client
}

// Create registers the callback URL. The provider allows only one
// subscription per application and rejects a second create outright, so any
// stale subscription pointing elsewhere is deleted first, and an existing one
// already pointing at the callback URL is returned as-is.
func (m *Manager) Create(ctx context.Context) (*strava.Subscription, error) {
	existing, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, sub := range existing {
		if sub.CallbackURL == m.CallbackURL {
			slog.Info("Subscription already registered", "id", sub.ID)
			return &sub, nil
		}
		slog.Info("Deleting stale subscription", "id", sub.ID, "callback_url", sub.CallbackURL)
		if err := m.Delete(ctx, sub.ID); err != nil {
			return nil, err
		}
	}

	form := url.Values{}
	form.Set("client_id", m.ClientID)
	form.Set("client_secret", m.ClientSecret)
	form.Set("callback_url", m.CallbackURL)
	form.Set("verify_token", m.verifyToken())

	body, err := m.do(ctx, http.MethodPost, "", form, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var sub strava.Subscription
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, &strava.SubscriptionError{Body: string(body)}
	}
	sub.CallbackURL = m.CallbackURL
	slog.Info("Created subscription", "id", sub.ID)
	return &sub, nil
}

// List returns the application's current subscriptions.
func (m *Manager) List(ctx context.Context) ([]strava.Subscription, error) {
	form := url.Values{}
	form.Set("client_id", m.ClientID)
	form.Set("client_secret", m.ClientSecret)

	body, err := m.do(ctx, http.MethodGet, "", form, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var subs []strava.Subscription
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, &strava.SubscriptionError{Body: string(body)}
	}
	return subs, nil
}

// Delete removes a subscription by id.
func (m *Manager) Delete(ctx context.Context, id int64) error {
	form := url.Values{}
	form.Set("client_id", m.ClientID)
	form.Set("client_secret", m.ClientSecret)

	_, err := m.do(ctx, http.MethodDelete, "/"+strconv.FormatInt(id, 10), form, http.StatusNoContent)
	return err
}

func (m *Manager) do(ctx context.Context, method, path string, form url.Values, wantStatus int) ([]byte, error) {
	endpoint := m.baseURL() + path

	var req *http.Request
	var err error
	if method == http.MethodGet {
		req, err = http.NewRequestWithContext(ctx, method, endpoint+"?"+form.Encode(), nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, err
	}

	resp, err := m.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != wantStatus {
		return nil, &strava.SubscriptionError{
			Body: fmt.Sprintf("%s %s returned %d: %s", method, endpoint, resp.StatusCode, body),
		}
	}
	return body, nil
}

func (m *Manager) verifyToken() string {
	if m.VerifyToken != "" {
		return m.VerifyToken
	}
	return DefaultVerifyToken
}

func (m *Manager) baseURL() string {
	if m.BaseURL != "" {
		return m.BaseURL
	}
	return DefaultSubscriptionURL
}

func (m *Manager) httpClient() *http.Client {
	if m.HTTP != nil {
		return m.HTTP
	}
	return http.DefaultClient
}
