package authorizer_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/config"
	"github.com/DanielPopoola/walletgate/internal/infrastructure/authorizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *authorizer.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return authorizer.NewClient(config.AuthorizerConfig{
		URL:     server.URL,
		Timeout: 2 * time.Second,
	}, logger)
}

func TestAuthorize_Authorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"success","data":{"authorization":true}}`))
	})

	result, err := client.Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, application.AuthorizationAuthorized, result.Decision)
	assert.JSONEq(t, `{"status":"success","data":{"authorization":true}}`, string(result.Payload))
}

func TestAuthorize_Denied(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"fail","data":{"authorization":false}}`))
	})

	result, err := client.Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, application.AuthorizationDenied, result.Decision)
	assert.Equal(t, "transfer not authorized", result.Reason)
}

func TestAuthorize_MissingFlagIsDenied(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{}}`))
	})

	result, err := client.Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, application.AuthorizationDenied, result.Decision)
}

func TestAuthorize_ServerErrorIsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"error"}`))
	})

	result, err := client.Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, application.AuthorizationUnavailable, result.Decision)
	assert.Equal(t, "authorization service unavailable", result.Reason)
}

func TestAuthorize_MalformedBodyIsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`not json`))
	})

	result, err := client.Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, application.AuthorizationUnavailable, result.Decision)
}

func TestAuthorize_UnreachableServiceIsUnavailable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := authorizer.NewClient(config.AuthorizerConfig{
		URL:     "http://127.0.0.1:1",
		Timeout: time.Second,
	}, logger)

	result, err := client.Authorize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, application.AuthorizationUnavailable, result.Decision)
	assert.Equal(t, "failed to contact authorization service", result.Reason)
}

func TestAuthorize_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result, err := client.Authorize(ctx)

	require.NoError(t, err)
	assert.Equal(t, application.AuthorizationUnavailable, result.Decision)
}
