package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/desertthunder/dmrsv-appdata/internal/shared"
)

const (
	DefaultTrackListURL = "https://v-archive.net/db/songs.json"
	DefaultUserAgent    = "djmax-random-selector-v/appdatagen"
	DefaultTimeout      = 30 * time.Second
)

// VArchiveClient downloads the upstream track database.
type VArchiveClient struct {
	url        string
	userAgent  string
	httpClient *http.Client
}

// NewVArchiveClient creates a client for the track list at url.
//
// Empty values fall back to the package defaults. When client is nil a new
// [http.Client] with the given timeout is used.
func NewVArchiveClient(url, userAgent string, timeout time.Duration, client *http.Client) *VArchiveClient {
	if url == "" {
		url = DefaultTrackListURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &VArchiveClient{
		url:        url,
		userAgent:  userAgent,
		httpClient: client,
	}
}

// URL returns the endpoint the client downloads from.
func (c *VArchiveClient) URL() string {
	return c.url
}

// FetchTrackList performs the GET request and returns the raw response body.
func (c *VArchiveClient) FetchTrackList(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrFetchFailed, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w: %v", shared.ErrFetchFailed, shared.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", shared.ErrFetchFailed, resp.StatusCode, c.url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w: %v", shared.ErrFetchFailed, shared.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrFetchFailed, err)
	}

	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
