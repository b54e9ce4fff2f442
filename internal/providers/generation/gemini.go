package generation

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini provider.
type GeminiConfig struct {
	APIKey    string
	Model     string
	MaxTokens int32
}

// GeminiProvider calls Gemini through the official genai client.
type GeminiProvider struct {
	cfg GeminiConfig
	cli *genai.Client
}

// NewGeminiProvider fails when no API key is configured.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: missing API key")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 8192
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &GeminiProvider{cfg: cfg, cli: cli}, nil
}

func (p *GeminiProvider) ID() string { return p.cfg.Model }

// Complete sends the prompt as text plus an inline JPEG part.
func (p *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	parts := []*genai.Part{{Text: req.Prompt}}
	if req.Screenshot != "" {
		img, err := base64.StdEncoding.DecodeString(req.Screenshot)
		if err != nil {
			return "", fmt.Errorf("%w: gemini: screenshot: %v", ErrProvider, err)
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: img}})
	}

	resp, err := p.cli.Models.GenerateContent(ctx, p.cfg.Model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: parts}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
			Temperature:       genai.Ptr[float32](0.2),
			TopP:              genai.Ptr[float32](0.95),
			TopK:              genai.Ptr[float32](64),
			MaxOutputTokens:   p.cfg.MaxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrProvider, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini: no candidates", ErrProvider)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini: empty candidate", ErrProvider)
	}
	return text, nil
}
