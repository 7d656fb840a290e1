package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

type chatCompletions interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client calls an OpenAI-compatible chat completions endpoint once per
// analysis, without retries.
type Client struct {
	completions chatCompletions
	cfg         Config
	schema      string
	logger      *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(cfg.HTTPClient),
		option.WithMaxRetries(0),
	)
	return &Client{
		completions: &client.Chat.Completions,
		cfg:         cfg,
		schema:      AnalysisSchema(),
		logger:      logger,
	}, nil
}

func (c *Client) Model() string {
	return c.cfg.Model
}

// Analyze never returns an error: transport and status failures yield
// APIErrorAnalysis, unparsable replies yield ParseFailureAnalysis.
func (c *Client) Analyze(ctx context.Context, text string, conv *domain.ConversationContext) domain.Analysis {
	content, err := c.complete(ctx, BuildPrompt(text, conv, c.schema))
	if err != nil {
		c.logger.Warn("remote analysis call failed", "model", c.cfg.Model, "error", err)
		return APIErrorAnalysis()
	}
	analysis, err := ParseAnalysis(content)
	if err != nil {
		c.logger.Warn("remote analysis reply unparsable", "model", c.cfg.Model, "error", err)
		return ParseFailureAnalysis()
	}
	return analysis
}

var errEmptyChoices = errors.New("empty choices in completion")

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(c.cfg.Model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(c.cfg.Temperature),
		MaxTokens:   openai.Int(int64(c.cfg.MaxTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}
	completion, err := c.completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if completion == nil || len(completion.Choices) == 0 {
		return "", errEmptyChoices
	}
	return completion.Choices[0].Message.Content, nil
}
