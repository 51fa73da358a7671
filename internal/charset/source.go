package charset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher retrieves the raw bytes behind a source locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, locator string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, locator string) ([]byte, error) {
	return f(ctx, locator)
}

// Ensure SourceFetcher implements Fetcher at compile time.
var _ Fetcher = (*SourceFetcher)(nil)

const (
	defaultFetchTimeout = 10 * time.Second
	defaultUserAgent    = "symbols/0.1"
	maxResourceBytes    = 32 << 20
)

// SourceFetcher loads character set resources over HTTP(S) or from disk.
type SourceFetcher struct {
	baseDir   string
	http      *http.Client
	userAgent string
}

// NewSourceFetcher creates a fetcher. Relative file locators are resolved
// against baseDir; a zero timeout uses the default.
func NewSourceFetcher(baseDir string, timeout time.Duration) *SourceFetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &SourceFetcher{
		baseDir: baseDir,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}
}

// Fetch returns the resource body for locator.
func (f *SourceFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	trimmed := strings.TrimSpace(locator)
	if trimmed == "" {
		return nil, fmt.Errorf("empty source locator")
	}

	u, err := url.Parse(trimmed)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return f.fetchHTTP(ctx, u)
		case "file":
			return f.readFile(u.Path)
		}
	}
	return f.readFile(trimmed)
}

func (f *SourceFetcher) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned status %d", u.Redacted(), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (f *SourceFetcher) readFile(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && f.baseDir != "" {
		path = filepath.Join(f.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	return data, nil
}
