package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dyluth/radar/pkg/radar"
)

// DefaultTimeout bounds HTTP fetches when no client is supplied.
const DefaultTimeout = 30 * time.Second

// URL reads a delimited document over HTTP GET.
type URL struct {
	URL       string
	Delimiter rune
	Client    *http.Client
}

// Fetch implements Fetcher.
func (u *URL) Fetch(ctx context.Context) (*Batch, error) {
	resp, err := get(ctx, u.Client, u.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	delim := u.Delimiter
	if delim == 0 {
		delim = DefaultDelimiter
	}

	return parseDelimited(urlName(u.URL), resp.Body, delim)
}

// get issues a GET and maps unreachable or missing documents to
// SourceNotFoundError. The caller closes the body.
func get(ctx context.Context, client *http.Client, target string) (*http.Response, error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", target, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &radar.SourceNotFoundError{Source: target, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		resp.Body.Close()
		return nil, &radar.SourceNotFoundError{Source: target, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status fetching %s: %s", target, resp.Status)
	}

	return resp, nil
}

func urlName(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if name := documentName(parsed.Path); name != "" {
		return name
	}
	return parsed.Host
}
