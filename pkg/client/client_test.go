package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"booknotion-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientWithServer(t *testing.T, handler http.Handler, deadFirst bool) *HTTPClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := NewStateStore(t.TempDir())
	require.NoError(t, err)

	candidates := []string{srv.URL}
	if deadFirst {
		// a port nothing listens on, to force a transport failure first
		candidates = []string{"http://127.0.0.1:1", srv.URL}
	}
	return NewHTTPClient(store, candidates...)
}

func TestFallsBackToNextCandidateOnTransportFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	c := newClientWithServer(t, handler, true)

	sections, err := c.Sections(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sections)

	// the working base is remembered for the next call
	assert.NotEqual(t, "http://127.0.0.1:1", c.base)
}

func TestNetworkErrorWhenAllCandidatesFail(t *testing.T) {
	store, err := NewStateStore(t.TempDir())
	require.NoError(t, err)
	c := NewHTTPClient(store, "http://127.0.0.1:1")

	_, err = c.Sections(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))

	var gatewayErr *Error
	require.ErrorAs(t, err, &gatewayErr)
	assert.Zero(t, gatewayErr.Status)
}

func TestApplicationErrorsDoNotRetryAndKeepCode(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"User not found","code":"USER_NOT_FOUND"}`))
	})
	c := newClientWithServer(t, handler, false)

	_, err := c.Login(context.Background(), &dto.LoginRequest{Email: "x@x.com", Password: "p"})
	require.Error(t, err)
	assert.False(t, IsNetworkError(err))

	var gatewayErr *Error
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "USER_NOT_FOUND", gatewayErr.Code)
	assert.Equal(t, http.StatusNotFound, gatewayErr.Status)
	assert.Contains(t, gatewayErr.Message, "User not found")
	assert.Equal(t, 1, calls)
}

func TestLoginStoresTokenAndAttachesBearer(t *testing.T) {
	var seenAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			w.Write([]byte(`{"message":"Login successful","token":"tok-1","user":{"id":"7e2f6c51-74b8-4f79-bb27-6d0a6f0b8a11","username":"ana","email":"ana@x.com"}}`))
		case "/api/sections":
			seenAuth = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	})
	c := newClientWithServer(t, handler, false)

	res, err := c.Login(context.Background(), &dto.LoginRequest{Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	assert.Equal(t, "tok-1", c.state.Token())

	_, err = c.Sections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", seenAuth)
}

func TestResolvePrefersOverride(t *testing.T) {
	candidates := Candidates("http://custom:9999/")
	require.Len(t, candidates, 3)
	assert.Equal(t, "http://custom:9999", candidates[0])
	assert.Equal(t, DefaultCandidates[0], candidates[1])
}

func TestResolveProbesInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	base, err := Resolve(context.Background(), nil, []string{"http://127.0.0.1:1", srv.URL})
	require.NoError(t, err)
	assert.Equal(t, srv.URL, base)

	_, err = Resolve(context.Background(), nil, []string{"http://127.0.0.1:1"})
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}
