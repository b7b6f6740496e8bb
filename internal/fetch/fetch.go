// Package fetch provides the HTTP collaborator used by discovery and
// extraction: GET with bounded retry and redirect caps, plus a
// lightweight HEAD existence probe.
package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/menuscout/menuscout/internal/xerrors"
)

// DefaultUserAgent identifies the crawler to origin servers.
const DefaultUserAgent = "menuscout/1.0 (+https://github.com/menuscout/menuscout)"

// maxBodyBytes caps response bodies so one oversized resource cannot
// exhaust memory. Menus are small; 20 MB is generous even for PDFs.
const maxBodyBytes = 20 << 20

// Client wraps http.Client with timeouts, a user agent, limited retry
// on transient errors, and an optional per-client concurrency gate.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// PerRequestTimeout bounds each request when the caller's context
	// does not already carry a tighter deadline.
	PerRequestTimeout time.Duration
	// RedirectMaxHops caps redirect following. Zero means default (5).
	RedirectMaxHops int
	// MaxConcurrent limits in-flight requests per client instance.
	// Zero means unlimited.
	MaxConcurrent int

	limiter     chan struct{}
	limiterOnce sync.Once
}

// Get issues a GET and returns the body bytes and the Content-Type
// header. Network failures and non-2xx statuses come back as fetch
// errors.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, string, error) {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		body, ct, err := c.tryGet(ctx, rawURL)
		if err == nil {
			return body, ct, nil
		}
		lastErr = err
		if !isTransient(err) || i == attempts-1 {
			break
		}
		time.Sleep(time.Duration(i+1) * 200 * time.Millisecond)
	}
	return nil, "", lastErr
}

// Head issues a HEAD request and reports whether the URL answered with
// a success status. Used for common-path probing where the body is not
// needed.
func (c *Client) Head(ctx context.Context, rawURL string) (bool, error) {
	c.acquire()
	defer c.release()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false, xerrors.Wrap(xerrors.KindFetch, err, "new head request %s", rawURL)
	}
	if !isHTTPScheme(req.URL) {
		return false, xerrors.New(xerrors.KindFetch, "unsupported URL scheme: %q", rawURL)
	}
	req.Header.Set("User-Agent", c.userAgent())
	ctx, cancel := c.withTimeout(req.Context())
	defer cancel()
	resp, err := c.httpClient().Do(req.WithContext(ctx))
	if err != nil {
		return false, xerrors.Wrap(xerrors.KindFetch, err, "head %s", rawURL)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
	return resp.StatusCode >= 200 && resp.StatusCode <= 299, nil
}

func (c *Client) tryGet(ctx context.Context, rawURL string) ([]byte, string, error) {
	c.acquire()
	defer c.release()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", xerrors.Wrap(xerrors.KindFetch, err, "new request %s", rawURL)
	}
	if !isHTTPScheme(req.URL) {
		return nil, "", xerrors.New(xerrors.KindFetch, "unsupported URL scheme: %q", rawURL)
	}
	req.Header.Set("User-Agent", c.userAgent())

	ctx, cancel := c.withTimeout(req.Context())
	defer cancel()

	resp, err := c.httpClient().Do(req.WithContext(ctx))
	if err != nil {
		return nil, "", xerrors.Wrap(xerrors.KindFetch, err, "get %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 && resp.StatusCode <= 599 {
		return nil, "", xerrors.New(xerrors.KindFetch, "server error: %d from %s", resp.StatusCode, rawURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", xerrors.New(xerrors.KindFetch, "unexpected status: %d from %s", resp.StatusCode, rawURL)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", xerrors.Wrap(xerrors.KindFetch, err, "read body %s", rawURL)
	}
	return b, resp.Header.Get("Content-Type"), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating the
		// caller's client.
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.PerRequestTimeout, CheckRedirect: c.checkRedirectFunc()}
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.PerRequestTimeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.PerRequestTimeout)
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return strings.Contains(err.Error(), "server error:")
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func (c *Client) acquire() {
	if c.MaxConcurrent <= 0 {
		return
	}
	c.limiterOnce.Do(func() {
		c.limiter = make(chan struct{}, c.MaxConcurrent)
	})
	c.limiter <- struct{}{}
}

func (c *Client) release() {
	if c.MaxConcurrent <= 0 || c.limiter == nil {
		return
	}
	select {
	case <-c.limiter:
	default:
	}
}
