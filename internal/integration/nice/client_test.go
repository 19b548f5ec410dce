package nice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dhoini/nice-proxy/internal/domain"
	"github.com/Dhoini/nice-proxy/internal/metrics"
	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, authURL string) *Client {
	t.Helper()
	log := logger.NewNop()
	return NewClient(Config{
		AuthURL:      authURL,
		ClientID:     "client-123",
		ClientSecret: "s3cret",
		Timeout:      2 * time.Second,
	}, metrics.NewCustomerMetrics(prometheus.NewRegistry(), log), log)
}

func TestFetchTokenRelaysBody(t *testing.T) {
	const upstream = `{"access_token":"abc","token_type":"Bearer","expires_in":3600,"extra":{"k":[1,2]}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth2/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-123", r.PostForm.Get("client_id"))
		assert.Equal(t, "s3cret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(upstream))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL+"/")
	body, err := client.FetchToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, upstream, string(body))
}

func TestFetchTokenEveryCallHitsUpstream(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"access_token":"abc"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	for i := 0; i < 3; i++ {
		_, err := client.FetchToken(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestFetchTokenUpstreamError(t *testing.T) {
	const upstream = `{"error":"invalid_client","error_description":"bad secret"}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(upstream))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.FetchToken(context.Background())
	require.Error(t, err)

	var upstreamErr *domain.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusUnauthorized, upstreamErr.StatusCode)
	assert.Equal(t, upstream, upstreamErr.Body)
	assert.Equal(t, upstream, err.Error())
}

func TestFetchTokenInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FetchToken(context.Background())
	require.Error(t, err)
	var upstreamErr *domain.UpstreamError
	assert.False(t, errors.As(err, &upstreamErr))
}

func TestFetchTokenNotConfigured(t *testing.T) {
	_, err := newTestClient(t, "").FetchToken(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFetchTokenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).FetchToken(context.Background())
	require.Error(t, err)
}
