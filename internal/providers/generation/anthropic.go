package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/http/client"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const anthropicVersion = "2023-06-01"

// AnthropicConfig configures the Messages API provider.
type AnthropicConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
	Logger    *logging.Logger
}

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	cfg    AnthropicConfig
	client *client.Client
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string           `json:"role"`
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type   string          `json:"type"`
	Text   string          `json:"text,omitempty"`
	Source *anthropicImage `json:"source,omitempty"`
}

type anthropicImage struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropicProvider fails when no API key is configured.
func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: missing API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4000
	}

	opts := client.DefaultOptions("anthropic")
	opts.BaseURL = cfg.BaseURL
	if cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
	logger := logging.OrNop(cfg.Logger).Named("anthropic")
	opts.OnStateChange = func(name string, from, to resilience.State) {
		logger.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}

	c := client.NewClient(opts)
	c.SetHeader("x-api-key", cfg.APIKey)
	c.SetHeader("anthropic-version", anthropicVersion)
	c.SetHeader("content-type", "application/json")
	c.Resty.SetJSONMarshaler(sonic.Marshal)
	c.Resty.SetJSONUnmarshaler(sonic.Unmarshal)

	return &AnthropicProvider{cfg: cfg, client: c}, nil
}

func (p *AnthropicProvider) ID() string { return p.cfg.Model }

// Complete sends one user turn with the optional screenshot attached.
func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (string, error) {
	blocks := []anthropicBlock{{Type: "text", Text: req.Prompt}}
	if req.Screenshot != "" {
		blocks = append(blocks, anthropicBlock{
			Type: "image",
			Source: &anthropicImage{
				Type:      "base64",
				MediaType: "image/jpeg",
				Data:      req.Screenshot,
			},
		})
	}

	body := anthropicRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		System:    req.System,
		Messages:  []anthropicMessage{{Role: "user", Content: blocks}},
	}

	r, err := p.client.Request(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: %v", ErrProvider, err)
	}

	var out anthropicResponse
	_, err = p.client.ExecuteWithBreaker(func() (*resty.Response, error) {
		return r.SetBody(body).SetResult(&out).Post("/v1/messages")
	})
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: %v", ErrProvider, err)
	}

	if len(out.Content) == 0 || out.Content[0].Text == "" {
		return "", fmt.Errorf("%w: anthropic: response has no text content", ErrProvider)
	}
	return out.Content[0].Text, nil
}
