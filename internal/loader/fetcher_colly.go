package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements Fetcher on top of a Colly collector. It is the
// alternative backend for data hosts that sit behind the same crawling
// infrastructure as the rest of the deployment.
type CollyFetcher struct {
	UserAgent      string
	RequestTimeout time.Duration
	MaxBodySize    int // bytes, 0 = unlimited
	CacheDir       string
}

func NewCollyFetcher(timeout time.Duration) *CollyFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CollyFetcher{
		UserAgent:      userAgent,
		RequestTimeout: timeout,
		MaxBodySize:    20 * 1024 * 1024,
	}
}

// buildCollector creates a collector bound to ctx. Every status code reaches
// OnResponse so callers can tell a missing file from a transport failure.
func (f *CollyFetcher) buildCollector(ctx context.Context, host string) *colly.Collector {
	opts := []colly.CollectorOption{
		colly.UserAgent(f.UserAgent),
		colly.MaxBodySize(f.MaxBodySize),
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
		colly.StdlibContext(ctx),
	}
	if host != "" {
		opts = append(opts, colly.AllowedDomains(host))
	}
	if f.CacheDir != "" {
		opts = append(opts, colly.CacheDir(f.CacheDir))
	}

	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(f.RequestTimeout)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "application/json")
		r.Headers.Set("Cache-Control", "no-cache")
		r.Headers.Set("Pragma", "no-cache")
	})
	return c
}

func (f *CollyFetcher) Fetch(ctx context.Context, targetURL string) (*FetchedDocument, error) {
	parsedURL, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	c := f.buildCollector(ctx, parsedURL.Hostname())

	var result *FetchedDocument
	c.OnResponse(func(r *colly.Response) {
		result = &FetchedDocument{
			URL:         r.Request.URL.String(),
			StatusCode:  r.StatusCode,
			ContentType: r.Headers.Get("Content-Type"),
			Body:        io.NopCloser(bytes.NewReader(r.Body)),
			FetchedAt:   time.Now(),
			Headers:     map[string][]string(r.Headers.Clone()),
		}
	})

	if err := c.Visit(targetURL); err != nil {
		return nil, fmt.Errorf("visit failed: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("no response received for %s", targetURL)
	}
	if !isSuccess(result.StatusCode) {
		return nil, &StatusError{URL: targetURL, StatusCode: result.StatusCode}
	}
	return result, nil
}

func (f *CollyFetcher) Head(ctx context.Context, targetURL string) (int, error) {
	parsedURL, err := url.Parse(targetURL)
	if err != nil {
		return 0, fmt.Errorf("invalid URL: %w", err)
	}

	c := f.buildCollector(ctx, parsedURL.Hostname())

	status := 0
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
	})

	if err := c.Head(targetURL); err != nil {
		return 0, fmt.Errorf("head failed: %w", err)
	}
	if status == 0 {
		return http.StatusBadGateway, nil
	}
	return status, nil
}
