package strava

import "golang.org/x/oauth2"

// OAuthScopes are the scopes requested during account linking.
const OAuthScopes = "activity:write,activity:read_all,read,profile:write,read_all"

// Endpoint is Strava's OAuth2 endpoint pair.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://www.strava.com/api/v3/oauth/authorize",
	TokenURL: "https://www.strava.com/api/v3/oauth/token",
}

// OAuthConfig builds the oauth2 config used to construct the authorize URL
// for the linking flow. The code exchange itself goes through
// Client.ExchangeCode because Strava returns the athlete summary alongside
// the token, which the standard exchange drops.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{OAuthScopes},
	}
}

// AuthCodeURL returns the URL to send an athlete to for account linking.
func AuthCodeURL(clientID, clientSecret, redirectURL string) string {
	cfg := OAuthConfig(clientID, clientSecret, redirectURL)
	return cfg.AuthCodeURL("", oauth2.SetAuthURLParam("approval_prompt", "auto"), oauth2.SetAuthURLParam("response_type", "code"))
}
