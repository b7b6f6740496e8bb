// Package discover enumerates candidate menu URLs for a site. Three
// sub-discoveries run concurrently (sitemaps, homepage link scraping,
// and common-path probing) and their union, plus the base URL itself,
// is returned deduplicated. Discovery never fails: sub-failures degrade
// to empty contributions and are reported as diagnostics.
package discover

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/menuscout/menuscout/internal/fetch"
)

// Result carries the discovered URLs plus the sub-errors that were
// swallowed along the way, so failures stay observable without
// changing control flow.
type Result struct {
	URLs  []string
	Diags []error
}

// Discoverer bundles the fetch collaborator with discovery knobs.
type Discoverer struct {
	Client *fetch.Client
	// MaxSitemapDepth caps sitemap-index recursion (default 5).
	MaxSitemapDepth int
}

// Discover runs all sub-discoveries against baseURL concurrently.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) Result {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		res := Result{URLs: []string{baseURL}}
		if err != nil {
			res.Diags = append(res.Diags, err)
		}
		return res
	}

	var (
		mu    sync.Mutex
		urls  []string
		diags []error
	)
	add := func(found []string, err error) {
		mu.Lock()
		defer mu.Unlock()
		urls = append(urls, found...)
		if err != nil {
			diags = append(diags, err)
		}
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		add(d.fromSitemaps(ctx, base))
	}()
	go func() {
		defer wg.Done()
		add(d.fromHomepageLinks(ctx, base))
	}()
	go func() {
		defer wg.Done()
		add(d.fromCommonPaths(ctx, base))
	}()
	wg.Wait()

	urls = append(urls, base.String())
	out := dedupe(urls)
	for _, err := range diags {
		log.Debug().Err(err).Str("base", baseURL).Msg("discovery sub-failure")
	}
	return Result{URLs: out, Diags: diags}
}

// dedupe normalizes (strips fragments) and removes duplicates while
// keeping a stable order.
func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		norm := stripFragment(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

func stripFragment(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
