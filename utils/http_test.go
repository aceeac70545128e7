package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dns-parser/internal/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	config := types.DefaultConfig()
	logger := logrus.New()

	client := NewHTTPClient(config, logger)

	assert.NotNil(t, client)
	assert.Equal(t, config, client.config)
	assert.Equal(t, logger, client.logger)
	assert.NotNil(t, client.client)
	assert.Equal(t, config.Timeout, client.client.Timeout)

	assert.NoError(t, client.Close())
}

func TestHTTPClient_GetPageContent_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body>catalog</body></html>"))
	}))
	defer server.Close()

	config := types.DefaultConfig()
	client := NewHTTPClient(config, logrus.New())
	defer client.Close()

	body, err := client.GetPageContent(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html><body>catalog</body></html>", body)
	assert.Equal(t, config.UserAgent, gotUA)
}

func TestHTTPClient_GetPageContent_NotFound(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClient(types.DefaultConfig(), logrus.New())
	defer client.Close()

	_, err := client.GetPageContent(context.Background(), server.URL)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 404")
	assert.Equal(t, 1, calls, "failed requests must not be retried")
}

func TestHTTPClient_GetPageContent_ContextCancelled(t *testing.T) {
	client := NewHTTPClient(types.DefaultConfig(), logrus.New())
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetPageContent(ctx, "http://example.com")

	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
