package discover

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// commonPaths is the fixed dictionary of plausible menu locations,
// including localized variants for the markets the scorer targets.
var commonPaths = []string{
	"/menu",
	"/menu/",
	"/menus",
	"/menu.pdf",
	"/menu.html",
	"/carte",
	"/carte/",
	"/carte.pdf",
	"/la-carte",
	"/notre-carte",
	"/speisekarte",
	"/speisekarte.pdf",
	"/food",
	"/food-menu",
	"/dining",
	"/our-menu",
}

// headProbeTimeout bounds each existence check; probes are cheap and a
// slow one is not worth waiting for.
const headProbeTimeout = 5 * time.Second

// maxProbeConcurrency caps simultaneous HEAD requests against one site.
const maxProbeConcurrency = 8

// fromCommonPaths probes the path dictionary concurrently and keeps
// paths that answer with a success status.
func (d *Discoverer) fromCommonPaths(ctx context.Context, base *url.URL) ([]string, error) {
	var (
		mu    sync.Mutex
		found []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxProbeConcurrency)
	for _, p := range commonPaths {
		candidate := base.ResolveReference(&url.URL{Path: p}).String()
		g.Go(func() error {
			probeCtx, cancel := context.WithTimeout(gctx, headProbeTimeout)
			defer cancel()
			ok, err := d.Client.Head(probeCtx, candidate)
			if err != nil || !ok {
				return nil
			}
			mu.Lock()
			found = append(found, candidate)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return found, nil
}
