package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration for one extraction service
// instance. All knobs are explicit; nothing is read from ambient
// globals at call time.
type Config struct {
	// Structuring service
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string
	// UseOpenAI switches the structuring backend to an
	// OpenAI-compatible endpoint instead of the Ollama wire format.
	UseOpenAI bool

	// Discovery / orchestration
	MaxCandidates int // ranked candidates attempted (default 15)
	BatchSize     int // candidates processed concurrently (default 3)

	// Network
	UserAgent    string
	FetchTimeout time.Duration // page/sitemap fetches (default 12s)

	// Rendering
	ChromePath    string
	RenderTimeout time.Duration // full page load (default 30s)
	DisableRender bool

	Verbose bool
}

func (c *Config) applyDefaults() {
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = 15
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 3
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 12 * time.Second
	}
	if c.RenderTimeout <= 0 {
		c.RenderTimeout = 30 * time.Second
	}
}

// ApplyEnvToConfig populates unset fields of cfg from environment
// variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.LLMBaseURL == "" {
		// Support both names; prefer the specific one
		v := os.Getenv("STRUCTURE_BASE_URL")
		if v == "" {
			v = os.Getenv("LLM_BASE_URL")
		}
		cfg.LLMBaseURL = v
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("MENUSCOUT_UA")
	}
	if cfg.ChromePath == "" {
		cfg.ChromePath = os.Getenv("CHROME_PATH")
	}
	if cfg.MaxCandidates == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("MAX_CANDIDATES"))); err == nil && n > 0 {
			cfg.MaxCandidates = n
		}
	}
	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey)))
		if s == "1" || s == "true" || s == "yes" || s == "on" {
			*dst = true
		}
	}
	setBool(&cfg.UseOpenAI, "LLM_OPENAI_COMPAT")
	setBool(&cfg.DisableRender, "DISABLE_RENDER")
}
