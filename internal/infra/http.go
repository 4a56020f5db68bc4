package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent is sent on every outbound request. Yahoo endpoints reject
// requests with an empty or default Go UA.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// DefaultHTTPTimeout bounds every provider call; a single slow source must
// not hang the whole analysis.
const DefaultHTTPTimeout = 10 * time.Second

var httpClient = &http.Client{Timeout: DefaultHTTPTimeout}

// DoGet performs a context-bound GET request and returns the response body.
// The caller must close the returned body. Non-2xx statuses are errors.
func DoGet(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("GET %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, resp.StatusCode, fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}

	return resp.Body, resp.StatusCode, nil
}
