package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Completer is the AI completion collaborator: prompt text in,
// completion text out, subject to failure.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	Provider     string // "googleai" or "ollama"
	Model        string
	GeminiAPIKey string
	OllamaURL    string
	CallTimeout  time.Duration
}

// Client implements Completer over a langchaingo model.
type Client struct {
	model llms.Model
	name  string
	to    time.Duration
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm model name is required")
	}

	var model llms.Model
	var err error
	switch cfg.Provider {
	case "googleai", "":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini api key is required for the googleai provider")
		}
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	case "ollama":
		model, err = ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.OllamaURL),
			ollama.WithKeepAlive("5m"),
		)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", cfg.Provider, err)
	}

	return &Client{model: model, name: cfg.Model, to: cfg.CallTimeout}, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	resp, err := c.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", &CompletionError{Model: c.name, Category: Categorize(err), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CompletionError{Model: c.name, Category: FailureCategoryError, Err: fmt.Errorf("empty response")}
	}
	return resp.Choices[0].Content, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.to)
}
