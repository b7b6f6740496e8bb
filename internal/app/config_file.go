package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections
// map naturally onto flags and env.
type FileConfig struct {
	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
		OpenAI  bool   `yaml:"openaiCompat"`
	} `yaml:"llm"`

	Discovery struct {
		MaxCandidates int `yaml:"maxCandidates"`
		BatchSize     int `yaml:"batchSize"`
	} `yaml:"discovery"`

	Fetch struct {
		UserAgent string `yaml:"userAgent"`
		// Timeout is a Go duration string, e.g. "12s".
		Timeout string `yaml:"timeout"`
	} `yaml:"fetch"`

	Render struct {
		ChromePath string `yaml:"chromePath"`
		Timeout    string `yaml:"timeout"`
		Disable    bool   `yaml:"disable"`
	} `yaml:"render"`

	Verbose bool `yaml:"verbose"`
}

// LoadFileConfig reads a YAML config file.
func LoadFileConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// MergeFileConfig fills unset cfg fields from fc. Flags and env win
// over the file.
func MergeFileConfig(cfg *Config, fc *FileConfig) {
	if cfg == nil || fc == nil {
		return
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if !cfg.UseOpenAI {
		cfg.UseOpenAI = fc.LLM.OpenAI
	}
	if cfg.MaxCandidates == 0 {
		cfg.MaxCandidates = fc.Discovery.MaxCandidates
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = fc.Discovery.BatchSize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.FetchTimeout == 0 {
		if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if cfg.ChromePath == "" {
		cfg.ChromePath = fc.Render.ChromePath
	}
	if cfg.RenderTimeout == 0 {
		if d, err := time.ParseDuration(fc.Render.Timeout); err == nil {
			cfg.RenderTimeout = d
		}
	}
	if !cfg.DisableRender {
		cfg.DisableRender = fc.Render.Disable
	}
	if !cfg.Verbose {
		cfg.Verbose = fc.Verbose
	}
}
