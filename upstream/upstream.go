// Package upstream performs the outbound fetch behind POST /users.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/docker/go-units"
	"go.uber.org/zap"
)

// DefaultUsersURL is the placeholder service queried by POST /users.
const DefaultUsersURL = "https://jsonplaceholder.typicode.com/users"

// DefaultMaxBodySize caps how much of the upstream body is read.
const DefaultMaxBodySize int64 = 10 * units.MB

// Descriptor describes a completed fetch: the response metadata, not its
// payload. The payload is read only to check that it is JSON.
type Descriptor struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	OK         bool              `json:"ok"`
	URL        string            `json:"url"`
	Redirected bool              `json:"redirected"`
	Headers    map[string]string `json:"headers"`
}

// Client fetches the upstream resource. The zero value is not usable; use New.
type Client struct {
	url         string
	http        *http.Client
	logger      *zap.Logger
	maxBodySize int64
}

type Options struct {
	// URL defaults to DefaultUsersURL.
	URL string
	// HTTPClient defaults to http.DefaultClient. No timeout is added here.
	HTTPClient *http.Client
	// MaxBodySize defaults to DefaultMaxBodySize.
	MaxBodySize int64
	Logger      *zap.Logger
}

// New creates a Client from opts, filling in defaults.
func New(opts Options) *Client {
	c := &Client{
		url:         opts.URL,
		http:        opts.HTTPClient,
		logger:      opts.Logger,
		maxBodySize: opts.MaxBodySize,
	}
	if c.url == "" {
		c.url = DefaultUsersURL
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.maxBodySize <= 0 {
		c.maxBodySize = DefaultMaxBodySize
	}
	return c
}

// URL returns the fetched URL.
func (c *Client) URL() string {
	return c.url
}

// Fetch issues exactly one GET to the upstream and describes the result.
// Transport failures, non-2xx statuses and non-JSON bodies are returned as
// errors; nothing is retried.
func (c *Client) Fetch(ctx context.Context) (*Descriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.url, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.url, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", c.url, err)
	}

	c.logger.Debug("upstream responded",
		zap.String("url", c.url),
		zap.Int("status", res.StatusCode),
		zap.String("size", units.HumanSize(float64(len(body)))),
		zap.Duration("elapsed", time.Since(start)))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: %s", c.url, ErrUnexpectedStatus, res.Status)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, fmt.Errorf("fetch %s: %w: limit is %s", c.url, ErrBodyTooLarge, units.HumanSize(float64(c.maxBodySize)))
	}
	if !json.Valid(bytes.TrimSpace(body)) {
		return nil, fmt.Errorf("fetch %s: %w", c.url, ErrMalformedBody)
	}

	return describe(req, res), nil
}

func describe(req *http.Request, res *http.Response) *Descriptor {
	hs := make(map[string]string, len(res.Header))
	for k := range res.Header {
		hs[http.CanonicalHeaderKey(k)] = res.Header.Get(k)
	}

	// http.Transport sets res.Request to the last request of a redirect
	// chain, which carries the redirect response that caused it. Other
	// round trippers may leave it nil.
	final, redirected := req.URL, false
	if res.Request != nil && res.Request.URL != nil {
		final = res.Request.URL
		redirected = res.Request.Response != nil
	}

	return &Descriptor{
		Status:     res.StatusCode,
		StatusText: http.StatusText(res.StatusCode),
		OK:         res.StatusCode >= 200 && res.StatusCode <= 299,
		URL:        final.String(),
		Redirected: redirected,
		Headers:    hs,
	}
}
