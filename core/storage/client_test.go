package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointHost(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		useSSL     bool
		wantHost   string
		wantSecure bool
	}{
		{name: "BareHost", endpoint: "localhost:9000", wantHost: "localhost:9000"},
		{name: "BareHostWithSSL", endpoint: "minio.internal", useSSL: true, wantHost: "minio.internal", wantSecure: true},
		{name: "HTTPSForcesTLS", endpoint: "https://s3.amazonaws.com/", wantHost: "s3.amazonaws.com", wantSecure: true},
		{name: "HTTPDisablesTLS", endpoint: "http://localhost:9000", useSSL: true, wantHost: "localhost:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, secure, err := endpointHost(tt.endpoint, tt.useSSL)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}

func TestNewClient_EmptyEndpoint(t *testing.T) {
	_, err := NewClient(Config{Endpoint: " https:// "})
	assert.Error(t, err)
}

func TestNewClient_PublishesHandoff(t *testing.T) {
	type upload struct {
		method      string
		path        string
		contentType string
	}
	var (
		mu      sync.Mutex
		uploads []upload
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		uploads = append(uploads, upload{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type")})
		mu.Unlock()
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(Config{
		Endpoint:       srv.URL,
		AccessKey:      "key",
		SecretKey:      "secret",
		Region:         "us-east-1",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)

	key := HandoffKey("shop", "fr-CA")
	err = PutBytes(context.Background(), client, "localization", key, []byte("id,appId\n"), CSVContentType)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, uploads)
	last := uploads[len(uploads)-1]
	assert.Equal(t, http.MethodPut, last.method)
	assert.Equal(t, "/localization/handoff/shop/fr-CA.csv", last.path)
	assert.Equal(t, CSVContentType, last.contentType)
}
