package stacio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Fetcher retrieves the bytes at a location. It returns the resolved location
// the bytes were read from: an absolute path, or the final URL after redirects.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (data []byte, resolved string, err error)
}

// FileFetcher reads from a filesystem.
type FileFetcher struct {
	Fs afero.Fs
}

// Fetch reads a path or file:// URL.
func (f FileFetcher) Fetch(ctx context.Context, location string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	path, err := localPath(location)
	if err != nil {
		return nil, "", err
	}
	fs := f.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, "", fmt.Errorf("stacio: read %s: %w", path, err)
	}
	return data, path, nil
}

// localPath turns a path or file:// URL into an absolute filesystem path.
func localPath(location string) (string, error) {
	path := location
	if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
		path = filepath.FromSlash(u.Path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("stacio: resolve path %s: %w", location, err)
	}
	return abs, nil
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stacio: GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// DefaultMaxBytes caps HTTP response bodies when HTTPFetcher.MaxBytes is zero.
const DefaultMaxBytes int64 = 64 << 20

// TooLargeError reports a response body longer than the fetcher's limit.
type TooLargeError struct {
	URL   string
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("stacio: GET %s: body exceeds %d bytes", e.URL, e.Limit)
}

// HTTPFetcher reads http(s) URLs. Transport errors and 5xx responses are
// retried with exponential backoff up to MaxRetries times; 4xx responses are
// not retried.
type HTTPFetcher struct {
	Client     *http.Client
	UserAgent  string
	MaxRetries uint64
	// InitialInterval is the first retry delay. Zero uses the backoff default.
	InitialInterval time.Duration
	// MaxBytes limits the response body size. Zero uses DefaultMaxBytes.
	MaxBytes int64
	Logger   *zap.Logger
}

// NewHTTPFetcher returns a fetcher using http.DefaultClient and no retries.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: http.DefaultClient, UserAgent: DefaultUserAgent}
}

// Fetch performs a GET request and returns the body and the final URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	var (
		data     []byte
		resolved string
	)
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("stacio: build request for %s: %w", location, err))
		}
		req.Header.Set("Accept", "application/json, application/geo+json")
		if f.UserAgent != "" {
			req.Header.Set("User-Agent", f.UserAgent)
		}

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("stacio: GET %s: %w", location, err)
		}
		defer resp.Body.Close()

		final := resp.Request.URL.String()
		switch {
		case resp.StatusCode >= 500:
			return &StatusError{URL: final, StatusCode: resp.StatusCode}
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return backoff.Permanent(&StatusError{URL: final, StatusCode: resp.StatusCode})
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
		if err != nil {
			return fmt.Errorf("stacio: read body of %s: %w", final, err)
		}
		if int64(len(body)) > limit {
			return backoff.Permanent(&TooLargeError{URL: final, Limit: limit})
		}
		data, resolved = body, final
		return nil
	}

	b := backoff.NewExponentialBackOff()
	if f.InitialInterval > 0 {
		b.InitialInterval = f.InitialInterval
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, f.MaxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		logger.Debug("retrying fetch", zap.String("location", location), zap.Duration("wait", wait), zap.Error(err))
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, "", err
	}
	return data, resolved, nil
}
