// Package app wires the discovery, extraction, structuring and
// validation stages into the end-to-end menu extraction pipeline.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/menuscout/menuscout/internal/discover"
	"github.com/menuscout/menuscout/internal/extract"
	"github.com/menuscout/menuscout/internal/fetch"
	"github.com/menuscout/menuscout/internal/menu"
	"github.com/menuscout/menuscout/internal/pdftext"
	"github.com/menuscout/menuscout/internal/render"
	"github.com/menuscout/menuscout/internal/score"
	"github.com/menuscout/menuscout/internal/structure"
	"github.com/menuscout/menuscout/internal/xerrors"
)

// Source names the extraction path that produced a menu.
type Source string

const (
	SourcePDF  Source = "pdf"
	SourceHTML Source = "html"
	SourceJS   Source = "js"
)

// ExtractionResult is the terminal artifact of one extraction request.
type ExtractionResult struct {
	Source    Source    `json:"source"`
	Menu      menu.Menu `json:"menu"`
	SourceURL string    `json:"source_url"`
}

// PageRenderer abstracts the headless-browser collaborator so tests can
// substitute a fake and deployments can disable rendering entirely.
type PageRenderer interface {
	RenderAndExtract(ctx context.Context, url string) (string, error)
}

// minExtractChars is the minimum text length worth sending to the
// structuring service.
const minExtractChars = 100

// App is a stateless extraction service; every request is independent.
type App struct {
	cfg        Config
	fetcher    *fetch.Client
	discoverer *discover.Discoverer
	renderer   PageRenderer
	structurer *structure.Client
	validator  menu.Validator
}

// New builds an App from cfg, wiring default collaborators.
func New(cfg Config) *App {
	cfg.applyDefaults()
	fetcher := &fetch.Client{
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       2,
		PerRequestTimeout: cfg.FetchTimeout,
		MaxConcurrent:     8,
	}
	var backend structure.Chat
	if cfg.UseOpenAI {
		backend = structure.NewOpenAIChat(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		backend = structure.NewOllamaChat(cfg.LLMBaseURL, cfg.LLMModel)
	}
	var renderer PageRenderer
	if !cfg.DisableRender {
		renderer = &render.Renderer{
			ChromePath:  cfg.ChromePath,
			UserAgent:   cfg.UserAgent,
			LoadTimeout: cfg.RenderTimeout,
		}
	}
	return &App{
		cfg:        cfg,
		fetcher:    fetcher,
		discoverer: &discover.Discoverer{Client: fetcher},
		renderer:   renderer,
		structurer: &structure.Client{Backend: backend},
		validator:  menu.DefaultValidator(),
	}
}

// WithRenderer replaces the rendering collaborator. Mainly for tests.
func (a *App) WithRenderer(r PageRenderer) *App {
	a.renderer = r
	return a
}

// ExtractMenu runs the two top-level strategies concurrently: direct
// (the base URL itself) and discovery (enumerate, rank and try
// candidates). It returns the first validated menu. Sibling work is
// cancelled once a winner exists. When neither strategy produces a
// valid menu the run ends with a not_found error.
func (a *App) ExtractMenu(ctx context.Context, baseURL string) (*ExtractionResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan *ExtractionResult, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		results <- a.runDirect(ctx, baseURL)
	}()
	go func() {
		defer wg.Done()
		results <- a.runDiscovery(ctx, baseURL)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res != nil {
			// Abandon the sibling strategy; its context is cancelled
			// and any late result is discarded with the channel.
			cancel()
			log.Info().Str("url", res.SourceURL).Str("source", string(res.Source)).Msg("menu extracted")
			return res, nil
		}
	}
	return nil, xerrors.New(xerrors.KindNotFound, "no strategy produced a valid menu for %s", baseURL)
}

// runDirect tries the base URL itself: rendering first (JS-heavy sites
// rarely serve useful static HTML), then a static fetch branched on
// content format.
func (a *App) runDirect(ctx context.Context, baseURL string) *ExtractionResult {
	if a.renderer != nil {
		text, err := a.renderer.RenderAndExtract(ctx, baseURL)
		if err != nil {
			log.Debug().Err(err).Str("url", baseURL).Msg("direct render failed")
		} else if res := a.structureAndValidate(ctx, text, SourceJS, baseURL); res != nil {
			return res
		}
	}
	if ctx.Err() != nil {
		return nil
	}
	return a.tryCandidate(ctx, baseURL)
}

// runDiscovery enumerates candidates, ranks them, and works through the
// top of the ranking in small concurrent batches. The first validated
// menu short-circuits the remaining batches.
func (a *App) runDiscovery(ctx context.Context, baseURL string) *ExtractionResult {
	discovery := a.discoverer.Discover(ctx, baseURL)
	candidates := score.Top(discovery.URLs, a.cfg.MaxCandidates)
	log.Debug().Int("discovered", len(discovery.URLs)).Int("attempting", len(candidates)).Msg("discovery complete")

	for start := 0; start < len(candidates); start += a.cfg.BatchSize {
		if ctx.Err() != nil {
			return nil
		}
		end := start + a.cfg.BatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		if res := a.runBatch(ctx, candidates[start:end]); res != nil {
			return res
		}
	}
	return nil
}

func (a *App) runBatch(ctx context.Context, batch []string) *ExtractionResult {
	var (
		mu    sync.Mutex
		found *ExtractionResult
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, candidate := range batch {
		candidate := candidate
		g.Go(func() error {
			res := a.tryCandidate(gctx, candidate)
			if res == nil {
				return nil
			}
			mu.Lock()
			if found == nil {
				found = res
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return found
}

// tryCandidate fetches one URL statically, routes it by format, and
// structures+validates the extracted text. All failures are local to
// the candidate: logged, never propagated.
func (a *App) tryCandidate(ctx context.Context, candidate string) *ExtractionResult {
	body, contentType, err := a.fetcher.Get(ctx, candidate)
	if err != nil {
		log.Debug().Err(err).Str("url", candidate).Msg("candidate fetch failed")
		return nil
	}
	var (
		text   string
		source Source
	)
	switch fetch.DetectFormat(contentType, body, candidate) {
	case fetch.FormatPDF:
		source = SourcePDF
		text, err = pdftext.Extract(ctx, body)
		if err != nil {
			log.Debug().Err(err).Str("url", candidate).Msg("pdf extraction failed")
			return nil
		}
	case fetch.FormatHTML:
		source = SourceHTML
		text = extract.Text(body)
	default:
		log.Debug().Str("url", candidate).Str("contentType", contentType).Msg("unsupported format")
		return nil
	}
	return a.structureAndValidate(ctx, text, source, candidate)
}

// structureAndValidate is the shared tail of every strategy: text to
// menu via the structuring service, then the validator's verdict.
func (a *App) structureAndValidate(ctx context.Context, text string, source Source, sourceURL string) *ExtractionResult {
	if len(text) < minExtractChars {
		log.Debug().Str("url", sourceURL).Int("chars", len(text)).Msg("extracted text too short")
		return nil
	}
	m, err := a.structurer.Structure(ctx, text)
	if err != nil {
		log.Debug().Err(err).Str("url", sourceURL).Msg("structuring failed")
		return nil
	}
	if !a.validator.IsValid(m) {
		log.Debug().Str("url", sourceURL).Int("items", len(m.Items())).Msg("menu failed validation")
		return nil
	}
	return &ExtractionResult{Source: source, Menu: m, SourceURL: sourceURL}
}
