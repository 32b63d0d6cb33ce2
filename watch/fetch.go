package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrSourceUnavailable marks a fetch that did not yield a document. Both
// missing resources and transport failures wrap it; callers treat either
// as a recoverable per-source condition.
var ErrSourceUnavailable = errors.New("source unavailable")

// Fetcher yields the raw body of a named document.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// FileFetcher reads documents from a base directory.
type FileFetcher struct {
	Base string
}

func (f FileFetcher) Fetch(_ context.Context, path string) (string, error) {
	full := path
	if f.Base != "" {
		full = filepath.Join(f.Base, path)
	}
	raw, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return string(raw), nil
}

// HTTPFetcher retrieves documents relative to a base URL.
type HTTPFetcher struct {
	Base   string
	Client *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, path string) (string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	url := strings.TrimRight(f.Base, "/") + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s: HTTP %d", ErrSourceUnavailable, path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return string(body), nil
}
