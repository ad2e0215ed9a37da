// Package perplexity implements llm.FieldFiller over the Perplexity
// chat/completions API.
package perplexity

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the Perplexity client.
type Config struct {
	APIKey   string        // if empty, falls back to env PERPLEXITY_API_KEY
	BaseURL  string        // default https://api.perplexity.ai
	Model    string        // e.g. "sonar"
	MaxChars int           // contract text budget per request
	Retries  int           // retries after the first attempt
	Delay    time.Duration // fixed delay between attempts
	Timeout  time.Duration // http client timeout
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("PERPLEXITY_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.perplexity.ai"
	}
	if cfg.Model == "" {
		cfg.Model = "sonar"
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = 22000
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 600 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}
