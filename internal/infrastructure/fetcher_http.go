package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/yourusername/download-it/internal/domain"
)

// HTTPFetcher implements domain.Fetcher over net/http
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher. A nil client uses one without a timeout:
// a stalled transfer stalls the invocation.
func NewHTTPFetcher(client *http.Client, userAgent string) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPFetcher{
		client:    client,
		userAgent: userAgent,
	}
}

// Fetch issues a GET with compression disabled so Content-Length matches the bytes read
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*domain.FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// setting Accept-Encoding also stops the transport from adding gzip on its own
	req.Header.Set("Accept-Encoding", "none")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &domain.FetchResponse{
		StatusCode:    resp.StatusCode,
		StatusText:    statusText(resp),
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found")
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return text
}
