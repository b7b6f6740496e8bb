package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/menuscout/menuscout/internal/app"
	"github.com/menuscout/menuscout/internal/xerrors"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		targetURL     string
		configPath    string
		llmBaseURL    string
		llmModel      string
		llmKey        string
		llmOpenAI     bool
		maxCandidates int
		batchSize     int
		userAgent     string
		chromePath    string
		disableRender bool
		timeout       time.Duration
		verbose       bool
	)

	flag.StringVar(&targetURL, "url", "", "Restaurant base URL to extract a menu from")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.StringVar(&llmBaseURL, "llm.base", "", "Structuring service endpoint (default Ollama /api/chat)")
	flag.StringVar(&llmModel, "llm.model", "", "Structuring model name")
	flag.StringVar(&llmKey, "llm.key", "", "API key for OpenAI-compatible structuring endpoints")
	flag.BoolVar(&llmOpenAI, "llm.openaiCompat", false, "Use the OpenAI-compatible wire format instead of Ollama's")
	flag.IntVar(&maxCandidates, "max.candidates", 0, "Maximum ranked candidates to attempt (default 15)")
	flag.IntVar(&batchSize, "batch", 0, "Candidates processed concurrently (default 3)")
	flag.StringVar(&userAgent, "ua", "", "Custom User-Agent for outbound requests")
	flag.StringVar(&chromePath, "chrome", "", "Path to the Chrome binary (empty = auto-detect)")
	flag.BoolVar(&disableRender, "no-render", false, "Disable the headless-browser strategy")
	flag.DurationVar(&timeout, "timeout", 3*time.Minute, "Overall deadline for the extraction run")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if targetURL == "" {
		fmt.Fprintln(os.Stderr, "usage: menuscout -url https://restaurant.example")
		os.Exit(2)
	}

	cfg := app.Config{
		LLMBaseURL:    llmBaseURL,
		LLMModel:      llmModel,
		LLMAPIKey:     llmKey,
		UseOpenAI:     llmOpenAI,
		MaxCandidates: maxCandidates,
		BatchSize:     batchSize,
		UserAgent:     userAgent,
		ChromePath:    chromePath,
		DisableRender: disableRender,
		Verbose:       verbose,
	}
	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config file")
		}
		app.MergeFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	result, err := app.New(cfg).ExtractMenu(ctx, targetURL)
	if err != nil {
		kind, _ := xerrors.KindOf(err)
		log.Error().Err(err).Str("kind", string(kind)).Dur("elapsed", time.Since(start)).Msg("extraction failed")
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("encode result")
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("done")
}
