// Package fetch retrieves the grammar reference page.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tliron/commonlog"
)

// StatusError is returned for any response other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Fetcher performs a single GET per call. It does not retry.
type Fetcher struct {
	httpClient *http.Client
	log        commonlog.Logger
}

// NewFetcher creates a Fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		log:        commonlog.GetLogger("fortgrammar.fetch"),
	}
}

// Fetch returns the body of url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.log.Debug("fetching page", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.Error("request failed", "url", url, "error", err.Error())
		return "", fmt.Errorf("fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch: read body: %w", err)
	}

	f.log.Infof("fetched %d bytes from %s", len(body), url)
	return string(body), nil
}
