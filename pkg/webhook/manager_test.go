package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runtimeexceptions/server/pkg/strava"
)

func newTestManager(handler http.HandlerFunc) (*Manager, *httptest.Server) {
	srv := httptest.NewServer(handler)
	m := &Manager{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		CallbackURL:  "https://example.com/webhook",
		BaseURL:      srv.URL,
		HTTP:         srv.Client(),
	}
	return m, srv
}

func TestCreateReplacesStaleSubscription(t *testing.T) {
	var deleted []string
	m, srv := newTestManager(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`[{"id": 11, "callback_url": "https://old.example.com"}]`))
		case r.Method == http.MethodDelete:
			deleted = append(deleted, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost:
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client-id", r.Form.Get("client_id"))
			assert.Equal(t, "https://example.com/webhook", r.Form.Get("callback_url"))
			assert.Equal(t, "STRAVA", r.Form.Get("verify_token"))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": 42}`))
		}
	})
	defer srv.Close()

	sub, err := m.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), sub.ID)
	assert.Equal(t, []string{"/11"}, deleted)
}

func TestCreateReusesMatchingSubscription(t *testing.T) {
	m, srv := newTestManager(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`[{"id": 7, "callback_url": "https://example.com/webhook"}]`))
	})
	defer srv.Close()

	sub, err := m.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), sub.ID)
}

func TestCreateRejectedStatusIsSubscriptionError(t *testing.T) {
	m, srv := newTestManager(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`[]`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "already exists"}`))
	})
	defer srv.Close()

	_, err := m.Create(context.Background())
	require.Error(t, err)
	var subErr *strava.SubscriptionError
	require.ErrorAs(t, err, &subErr)
	assert.Contains(t, subErr.Body, "already exists")
}

func TestList(t *testing.T) {
	m, srv := newTestManager(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "client-secret", r.URL.Query().Get("client_secret"))
		w.Write([]byte(`[{"id": 1, "callback_url": "https://a.example.com"}, {"id": 2, "callback_url": "https://b.example.com"}]`))
	})
	defer srv.Close()

	subs, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, int64(2), subs[1].ID)
}

func TestDeleteUnexpectedStatus(t *testing.T) {
	m, srv := newTestManager(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	err := m.Delete(context.Background(), 11)
	require.Error(t, err)
	var subErr *strava.SubscriptionError
	assert.ErrorAs(t, err, &subErr)
}
