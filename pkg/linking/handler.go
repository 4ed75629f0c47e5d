// Package linking implements the OAuth account-linking flow: redirect the
// athlete to Strava's consent page, then exchange the returned code and bind
// the athlete to a local Runner.
package linking

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	shared "github.com/runtimeexceptions/server/pkg"
	"github.com/runtimeexceptions/server/pkg/strava"
	"github.com/runtimeexceptions/server/pkg/types"
)

// Handler serves the /strava/auth and /strava/callback pair.
type Handler struct {
	DB           shared.Database
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Exchange overrides the code exchange, for tests. Defaults to a plain
	// strava.Client against the real API.
	Exchange func(r *http.Request, code string) (*strava.TokenResponse, error)

	// Now overrides time.Now, for tests.
	Now func() time.Time
}

// Authorize redirects the athlete to the consent page.
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	url := strava.AuthCodeURL(h.ClientID, h.ClientSecret, h.RedirectURL)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// Callback exchanges the authorization code and upserts the Runner. Linking
// the same athlete twice refreshes the stored credential triple in place.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		slog.Warn("Athlete denied authorization", "error", errParam)
		http.Error(w, "authorization denied", http.StatusForbidden)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	token, err := h.exchange(r, code)
	if err != nil {
		slog.Error("Code exchange failed", "error", err)
		http.Error(w, "code exchange failed", http.StatusBadGateway)
		return
	}
	if token.Athlete == nil {
		slog.Error("Token response carried no athlete")
		http.Error(w, "code exchange failed", http.StatusBadGateway)
		return
	}

	runner := &types.Runner{
		StravaID:      strconv.FormatInt(token.Athlete.ID, 10),
		AccessToken:   token.AccessToken,
		AccessExpires: token.ExpiresAt,
		RefreshToken:  token.RefreshToken,
		Username:      token.Athlete.Username,
		FirstName:     token.Athlete.Firstname,
		LastName:      token.Athlete.Lastname,
		CreatedAt:     h.now(),
	}
	if err := h.DB.UpsertRunner(ctx, runner); err != nil {
		slog.Error("Failed to persist runner", "strava_id", runner.StravaID, "error", err)
		http.Error(w, "failed to persist runner", http.StatusInternalServerError)
		return
	}

	slog.Info("Linked runner", "strava_id", runner.StravaID, "username", runner.Username)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "linked",
		"strava_id": runner.StravaID,
	})
}

func (h *Handler) exchange(r *http.Request, code string) (*strava.TokenResponse, error) {
	if h.Exchange != nil {
		return h.Exchange(r, code)
	}
	client := strava.NewClient(nil)
	return client.ExchangeCode(r.Context(), h.ClientID, h.ClientSecret, code)
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
