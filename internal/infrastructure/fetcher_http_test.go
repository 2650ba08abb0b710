package infrastructure

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_SendsHeaders(t *testing.T) {
	var acceptEncoding, userAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acceptEncoding = r.Header.Get("Accept-Encoding")
		userAgent = r.Header.Get("User-Agent")
		w.Write([]byte("payload"))
	}))
	defer ts.Close()

	f := NewHTTPFetcher(nil, "download-it/test")
	resp, err := f.Fetch(context.Background(), ts.URL+"/file.bin")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, "none", acceptEncoding)
	assert.Equal(t, "download-it/test", userAgent)
	assert.True(t, resp.OK())
	assert.Equal(t, int64(len("payload")), resp.ContentLength)
	assert.Equal(t, "payload", string(body))
}

func TestHTTPFetcher_StatusText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	resp, err := NewHTTPFetcher(nil, "").Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.StatusText)
}

func TestHTTPFetcher_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewHTTPFetcher(nil, "").Fetch(context.Background(), url)
	assert.Error(t, err)
}
