package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

const (
	DefaultBaseURL     = "https://api.deepseek.com/v1"
	DefaultModel       = "deepseek-chat"
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 500
	DefaultTimeout     = 10 * time.Second
)

var ErrMissingAPIKey = errors.New("remote analysis requires an api key")

// Analyst produces a remote analysis of one text. Implementations never
// fail; they return a fallback analysis instead.
type Analyst interface {
	Analyze(ctx context.Context, text string, conv *domain.ConversationContext) domain.Analysis
}

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	HTTPClient  *http.Client
}

func (c Config) withDefaults() Config {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultModel
	}
	if c.Temperature < 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}
