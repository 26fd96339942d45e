// Package fetch retrieves and parses forum pages over HTTP.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/corpix/uarand"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/qjroberts/xenforo-scraper/internal/forum"
)

// DefaultTimeout bounds a single page request.
const DefaultTimeout = 30 * time.Second

// StatusError reports a non-success HTTP response for a page fetch.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
}

// Client fetches pages with a browser-like identity and transparent
// redirect handling. It performs no retries: a failed fetch fails the
// traversal branch that requested it.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// Options configures a Client.
type Options struct {
	// UserAgent overrides the randomly chosen browser identity.
	UserAgent string
	// Timeout for a single request; DefaultTimeout when zero.
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient builds a page fetcher.
func NewClient(opts Options) *Client {
	ua := opts.UserAgent
	if ua == "" {
		ua = uarand.GetRandom()
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	client := resty.New()
	client.SetHeader("User-Agent", ua)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")
	client.SetTimeout(timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	return &Client{http: client, log: log}
}

// FetchPage retrieves the page identified by ref and parses it into a
// goquery document. The ref's cursor must point at a concrete page.
func (c *Client) FetchPage(ctx context.Context, ref forum.PageRef) (*goquery.Document, error) {
	if ref.Cursor.IsTerminal() {
		return nil, fmt.Errorf("fetch: terminal cursor for %s%s", ref.BaseURL, ref.Path)
	}

	url := ref.URL()
	c.log.Debug("fetching page", zap.String("url", url))

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: parse document: %w", url, err)
	}
	return doc, nil
}
