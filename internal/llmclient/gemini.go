package llmclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/internal/llmtransport"
)

type geminiGenerator struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

func newGemini(cfg Config) *geminiGenerator {
	return &geminiGenerator{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.TemperatureValue(),
		maxTokens:   cfg.MaxOutputTokens,
		// The caller's context carries the deadline.
		httpClient: &http.Client{},
	}
}

func (g *geminiGenerator) Name() string { return ProviderGemini }

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := llmtransport.NewTextRequest(prompt, g.temperature, g.maxTokens)
	text, err := llmtransport.DoGenerate(ctx, g.httpClient, llmtransport.GenerateEndpoint(g.baseURL, g.model), g.apiKey, req)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return text, nil
}

func (g *geminiGenerator) Health(ctx context.Context) error {
	if _, err := llmtransport.DoHealth(ctx, g.httpClient, g.baseURL, g.apiKey); err != nil {
		return fmt.Errorf("gemini health: %w", err)
	}
	return nil
}
