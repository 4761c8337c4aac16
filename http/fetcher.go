// Package http provides an HTTP-based implementation of pagetext.Fetcher.
// Pages are fetched with a single GET request and parsed into an HTML tree.
// JavaScript is not executed.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/fwojciec/pagetext"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodySize caps how much of a response body is read.
	DefaultMaxBodySize = int64(10 * 1024 * 1024)

	// DefaultUserAgent is sent with every request. Some servers reject or
	// serve different content to empty or library user agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36"

	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Ensure Fetcher implements pagetext.Fetcher at compile time.
var _ pagetext.Fetcher = (*Fetcher)(nil)

// Config holds the request settings of a Fetcher.
// Zero fields fall back to the package defaults.
type Config struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int64
}

// DefaultConfig returns the default request settings.
func DefaultConfig() Config {
	return Config{
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		MaxBodySize: DefaultMaxBodySize,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = d.MaxBodySize
	}
	return c
}

// Fetcher retrieves HTML pages using HTTP requests.
type Fetcher struct {
	client    *http.Client
	config    Config
	transport http.RoundTripper
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithConfig replaces all request settings at once.
func WithConfig(c Config) Option {
	return func(f *Fetcher) {
		f.config = c
	}
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.config.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
// Defaults to DefaultUserAgent if not specified.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.config.UserAgent = ua
	}
}

// WithMaxBodySize sets the maximum number of body bytes read per response.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.config.MaxBodySize = n
	}
}

// WithTransport sets the round tripper used by the underlying client.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.config = f.config.withDefaults()

	f.client = &http.Client{
		Timeout:   f.config.Timeout,
		Transport: f.transport,
	}

	return f
}

// Config returns the effective request settings.
func (f *Fetcher) Config() Config {
	return f.config
}

// Fetch performs one GET request for url and parses the response as HTML.
// It does not retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagetext.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &pagetext.Error{
			Code:    pagetext.ETRANSPORT,
			Message: fmt.Sprintf("invalid request for %s", url),
			Err:     err,
		}
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &pagetext.Error{
			Code:    pagetext.EHTTP,
			Message: fmt.Sprintf("HTTP %d for %s", resp.StatusCode, url),
			Status:  resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize))
	if err != nil {
		return nil, classify(url, err)
	}

	root, err := parse(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &pagetext.Error{
			Code:    pagetext.EINTERNAL,
			Message: fmt.Sprintf("failed to parse HTML from %s", url),
			Err:     err,
		}
	}

	return &pagetext.Document{URL: url, Root: root}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// parse decodes body to UTF-8 and builds the HTML tree. Scripting is
// disabled so <noscript> content is parsed as markup rather than raw text.
func parse(body []byte, contentType string) (*html.Node, error) {
	var r io.Reader = bytes.NewReader(body)
	if decoded, err := charset.NewReader(r, contentType); err == nil {
		r = decoded
	} else {
		r = bytes.NewReader(body)
	}
	return html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
}

// classify converts a transport error into a coded pagetext error.
// Timeouts are checked before connection failures: a dial that times out
// is a timeout. Caller cancellation is a transport fault.
func classify(url string, err error) *pagetext.Error {
	switch {
	case isTimeout(err):
		return &pagetext.Error{
			Code:    pagetext.ETIMEOUT,
			Message: fmt.Sprintf("%s took too long to respond", url),
			Err:     err,
		}
	case errors.Is(err, context.Canceled):
		return &pagetext.Error{
			Code:    pagetext.ETRANSPORT,
			Message: fmt.Sprintf("request to %s canceled", url),
			Err:     err,
		}
	case isConnectFailure(err):
		return &pagetext.Error{
			Code:    pagetext.ECONNECT,
			Message: fmt.Sprintf("could not connect to %s", url),
			Err:     err,
		}
	default:
		return &pagetext.Error{
			Code:    pagetext.ETRANSPORT,
			Message: fmt.Sprintf("request to %s failed", url),
			Err:     err,
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
