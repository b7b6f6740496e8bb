// Package render drives a headless Chrome instance to harvest text
// from JavaScript-rendered pages. Every call launches its own isolated
// browser and tears it down on all exit paths; instances are never
// shared between concurrent extractions.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/menuscout/menuscout/internal/extract"
)

// revealSelectors are tried in order; the first successful click is
// followed by a settle wait, the rest are skipped. A failed click just
// moves on to the next selector.
var revealSelectors = []string{
	"a[href*='menu']",
	"a[href*='carte']",
	"button[class*='menu']",
	"button[id*='menu']",
	"a[class*='menu']",
	"[class*='menu'] button",
}

// Renderer configures headless page loads. The zero value is usable;
// unset timings fall back to the defaults below.
type Renderer struct {
	// ChromePath overrides Chrome binary auto-detection.
	ChromePath string
	UserAgent  string
	// LoadTimeout bounds navigation and initial render (default 30s).
	LoadTimeout time.Duration
	// SettleDelay waits for deferred/lazy content after load (default 3s).
	SettleDelay time.Duration
	// ClickSettleDelay waits for content to update after a reveal
	// click (default 2s).
	ClickSettleDelay time.Duration
}

func (r *Renderer) loadTimeout() time.Duration {
	if r.LoadTimeout > 0 {
		return r.LoadTimeout
	}
	return 30 * time.Second
}

func (r *Renderer) settleDelay() time.Duration {
	if r.SettleDelay > 0 {
		return r.SettleDelay
	}
	return 3 * time.Second
}

func (r *Renderer) clickSettleDelay() time.Duration {
	if r.ClickSettleDelay > 0 {
		return r.ClickSettleDelay
	}
	return 2 * time.Second
}

// RenderAndExtract loads the URL in a fresh headless browser, triggers
// a likely "show menu" interaction, and returns the rendered page's
// menu-scored text. Launch, navigation and evaluation failures come
// back as errors the caller treats as "this strategy did not pan out".
func (r *Renderer) RenderAndExtract(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-component-update", true),
		chromedp.Flag("no-service-autorun", true),
		chromedp.WindowSize(1920, 1080),
	)
	if r.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.UserAgent))
	}
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	// Slack beyond the load timeout covers the settle waits and the
	// DOM harvest before the whole call is abandoned.
	ctx, cancel := context.WithTimeout(ctx, r.loadTimeout()+r.settleDelay()+r.clickSettleDelay()+15*time.Second)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	navCtx, navCancel := context.WithTimeout(tabCtx, r.loadTimeout())
	defer navCancel()
	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := chromedp.Run(tabCtx, chromedp.Sleep(r.settleDelay())); err != nil {
		return "", fmt.Errorf("settle %s: %w", url, err)
	}

	r.tryRevealMenu(tabCtx, url)

	var pageHTML string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("harvest %s: %w", url, err)
	}
	return extract.Text([]byte(pageHTML)), nil
}

// tryRevealMenu clicks the first matching reveal selector and waits for
// the content to update. All failures are non-fatal.
func (r *Renderer) tryRevealMenu(tabCtx context.Context, url string) {
	for _, sel := range revealSelectors {
		clickCtx, clickCancel := context.WithTimeout(tabCtx, 3*time.Second)
		err := chromedp.Run(clickCtx,
			chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible),
		)
		clickCancel()
		if err != nil {
			continue
		}
		log.Debug().Str("url", url).Str("selector", sel).Msg("clicked menu reveal element")
		_ = chromedp.Run(tabCtx, chromedp.Sleep(r.clickSettleDelay()))
		return
	}
}
