package strava

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.Client())
	client.BaseURL = server.URL
	return client, server
}

func TestCallStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		check      func(t *testing.T, err error)
	}{
		{
			name:       "401 is NotAuthenticated",
			statusCode: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var authErr *NotAuthenticatedError
				assert.True(t, errors.As(err, &authErr))
			},
		},
		{
			name:       "402 is PaidFeature",
			statusCode: http.StatusPaymentRequired,
			check: func(t *testing.T, err error) {
				var paidErr *PaidFeatureError
				assert.True(t, errors.As(err, &paidErr))
			},
		},
		{
			name:       "404 carries the URL",
			statusCode: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var notFound *NotFoundError
				require.True(t, errors.As(err, &notFound))
				assert.Contains(t, notFound.URL, "/activities/123")
			},
		},
		{
			name:       "500 is GenericError with status",
			statusCode: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var generic *GenericError
				require.True(t, errors.As(err, &generic))
				assert.Equal(t, http.StatusInternalServerError, generic.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			})
			defer server.Close()

			_, err := client.Activity(context.Background(), 123)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestActivity(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activities/42", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            42,
			"name":          "Morning Run",
			"type":          "Run",
			"distance":      5000,
			"average_speed": 2.5,
			"end_latlng":    []float64{51.5, -0.1},
		})
	})
	defer server.Close()

	activity, err := client.Activity(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), activity.ID)
	assert.Equal(t, "Run", activity.Type)
	assert.Equal(t, 51.5, activity.EndLatLng.Lat())
	assert.Equal(t, -0.1, activity.EndLatLng.Lng())
}

func TestActivityEmptyLatLngCleaned(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":           42,
			"start_latlng": []float64{},
			"end_latlng":   []float64{},
		})
	})
	defer server.Close()

	activity, err := client.Activity(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, activity.StartLatLng)
	assert.Nil(t, activity.EndLatLng)
}

func TestActivityOneElementLatLngIsValidationError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 42, "end_latlng": [51.5]}`))
	})
	defer server.Close()

	// A truncated coordinate must fail the decode, not reach Lat()/Lng().
	_, err := client.Activity(context.Background(), 42)
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Contains(t, validation.Reason, "exactly 2 elements")
}

func TestActivityMissingIDIsValidationError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "No ID here"}`))
	})
	defer server.Close()

	_, err := client.Activity(context.Background(), 42)
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
}

func TestUpdateActivitySendsPartialPatch(t *testing.T) {
	var received map[string]interface{}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/activities/42", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"id": 42, "description": "updated"}`))
	})
	defer server.Close()

	desc := "updated"
	updated, err := client.UpdateActivity(context.Background(), 42, UpdatableActivity{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Description)

	// Only the description field was patched; name is absent entirely.
	assert.Equal(t, "updated", received["description"])
	_, hasName := received["name"]
	assert.False(t, hasName)
}

func TestExchangeCode(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/token", r.URL.Path)
		r.ParseForm()
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "at",
			"refresh_token": "rt",
			"expires_at":    1700000000,
			"athlete":       map[string]interface{}{"id": 456, "username": "runner"},
		})
	})
	defer server.Close()

	token, err := client.ExchangeCode(context.Background(), "cid", "secret", "the-code")
	require.NoError(t, err)
	assert.Equal(t, "at", token.AccessToken)
	require.NotNil(t, token.Athlete)
	assert.Equal(t, int64(456), token.Athlete.ID)
}
