package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/ratelimit"
)

// maxFeedSize bounds the size of a fetched feed document.
const maxFeedSize = 64 << 20

// FileSource reads the feed from a local file.
type FileSource struct {
	path string
}

// NewFileSource constructs a FileSource.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads the whole feed document.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", s.path, err)
	}
	return data, nil
}

// HTTPSource downloads the feed document over HTTP.
type HTTPSource struct {
	url     string
	client  *http.Client
	limiter ratelimit.Limiter
	metrics Metrics
}

// NewHTTPSource constructs an HTTPSource issuing at most rps requests per second.
func NewHTTPSource(rawURL string, timeout time.Duration, rps int, metrics Metrics) (*HTTPSource, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("feed url scheme %q not supported", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("feed url missing host")
	}
	if metrics == nil {
		return nil, errors.New("feed source metrics is required")
	}
	if rps <= 0 {
		rps = 1
	}

	return &HTTPSource{
		url:     parsed.String(),
		client:  &http.Client{Timeout: timeout},
		limiter: ratelimit.New(rps),
		metrics: metrics,
	}, nil
}

// Fetch downloads the whole feed document.
func (s *HTTPSource) Fetch(ctx context.Context) (data []byte, err error) {
	s.limiter.Take()

	started := time.Now()
	defer func() {
		s.metrics.Observe("fetch_feed", err, started)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get feed: unexpected status %s", resp.Status)
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxFeedSize+1))
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	if len(data) > maxFeedSize {
		return nil, fmt.Errorf("feed exceeds %d bytes", maxFeedSize)
	}
	return data, nil
}
