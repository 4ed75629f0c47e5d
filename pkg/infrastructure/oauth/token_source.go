// Package oauth owns the Strava credential lifecycle for a Runner: an
// always-valid bearer token with transparent refresh, and an http transport
// that applies it.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	shared "github.com/runtimeexceptions/server/pkg"
)

// DefaultTokenURL is Strava's token endpoint.
const DefaultTokenURL = "https://www.strava.com/api/v3/oauth/token"

// Token is the credential triple as handed to callers.
type Token struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// TokenSource returns a valid token.
// It is safe for concurrent use by multiple goroutines within one process.
// Two processes refreshing the same Runner concurrently is an accepted
// last-write-wins race: both refreshes yield valid tokens and the triple is
// always persisted together, so the final state stays internally consistent.
type TokenSource interface {
	Token(ctx context.Context) (*Token, error)
}

// RunnerTokenSource reads the Runner's stored triple and refreshes it
// against the token endpoint when the stored expiry has passed.
type RunnerTokenSource struct {
	DB           shared.Database
	StravaID     string
	ClientID     string
	ClientSecret string

	// TokenURL overrides DefaultTokenURL, for tests.
	TokenURL string
	// HTTP overrides http.DefaultClient, for tests.
	HTTP *http.Client
	// Now overrides time.Now, for tests.
	Now func() time.Time

	mu sync.Mutex
}

func NewRunnerTokenSource(db shared.Database, stravaID, clientID, clientSecret string) *RunnerTokenSource {
	return &RunnerTokenSource{
		DB:           db,
		StravaID:     stravaID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
}

// Token returns the stored access token, performing the refresh exchange
// first when the stored expiry is not in the future. A failed refresh is not
// retried here; it surfaces as an authentication failure to the caller.
func (s *RunnerTokenSource) Token(ctx context.Context) (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runner, err := s.DB.GetRunner(ctx, s.StravaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get runner: %w", err)
	}
	if runner.AccessToken == "" {
		return nil, fmt.Errorf("runner %s has no access token", s.StravaID)
	}
	if runner.RefreshToken == "" {
		return nil, fmt.Errorf("runner %s has no refresh token", s.StravaID)
	}

	expiry := time.Unix(runner.AccessExpires, 0)
	if !s.now().Before(expiry) {
		return s.refresh(ctx, runner.RefreshToken)
	}

	return &Token{
		AccessToken:  runner.AccessToken,
		RefreshToken: runner.RefreshToken,
		Expiry:       expiry,
	}, nil
}

// refresh performs the HTTP exchange and persists the new triple in a
// single update before returning.
func (s *RunnerTokenSource) refresh(ctx context.Context, refreshToken string) (*Token, error) {
	slog.Info("Refreshing Strava token", "runner_id", s.StravaID)

	data := url.Values{}
	data.Set("client_id", s.ClientID)
	data.Set("client_secret", s.ClientSecret)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL(), strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("refresh failed with status: %d", resp.StatusCode)
	}

	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresAt    int64  `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}

	// Persist the triple atomically: token and expiry are never written apart.
	err = s.DB.UpdateRunner(ctx, s.StravaID, map[string]interface{}{
		"access_token":   result.AccessToken,
		"access_expires": result.ExpiresAt,
		"refresh_token":  result.RefreshToken,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist new tokens: %w", err)
	}

	return &Token{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Expiry:       time.Unix(result.ExpiresAt, 0),
	}, nil
}

func (s *RunnerTokenSource) tokenURL() string {
	if s.TokenURL != "" {
		return s.TokenURL
	}
	return DefaultTokenURL
}

func (s *RunnerTokenSource) httpClient() *http.Client {
	if s.HTTP != nil {
		return s.HTTP
	}
	return http.DefaultClient
}

func (s *RunnerTokenSource) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
