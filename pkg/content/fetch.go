// Package content turns a URL into readable prose. Pages are fetched
// through the Jina Reader proxy, which renders them to markdown-ish text;
// the result is then filtered down to the lines worth reading aloud.
package content

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"lectorgo/pkg/request"
)

const defaultReaderEndpoint = "https://r.jina.ai/"

// IsURL reports whether a single command line argument should be treated
// as a page address rather than literal text.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetcher retrieves pages through a reader proxy.
type Fetcher struct {
	rc       *request.Client
	endpoint string
}

// NewFetcher creates a fetcher. An empty endpoint uses the public Jina
// Reader instance.
func NewFetcher(endpoint string, rc *request.Client) *Fetcher {
	if endpoint == "" {
		endpoint = defaultReaderEndpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return &Fetcher{rc: rc, endpoint: endpoint}
}

// Fetch downloads the page and reduces it to readable prose. Fetch and
// extraction failures are returned as errors; garbage never flows on to
// the summarizer.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	body, err := f.rc.GetWithHeaders(ctx, f.endpoint+rawURL, map[string]string{
		"Accept": "text/plain",
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}

	text := string(body)
	if looksLikeHTML(text) {
		info, err := ExtractProse(strings.NewReader(text))
		if err == nil && info.IsReliable {
			return info.Prose, nil
		}
	}

	prose := ExtractReadable(text)
	if prose == "" {
		return "", fmt.Errorf("no readable content found at %s", rawURL)
	}
	return prose, nil
}

func looksLikeHTML(text string) bool {
	head := strings.ToLower(strings.TrimSpace(text))
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
