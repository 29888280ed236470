package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-sync/internal/embedding"

	"google.golang.org/genai"
)

const defaultModel = "text-embedding-004"

var errNoEmbedding = errors.New("gemini returned no embedding")

type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Provider embeds text through the Gemini API backend of google.golang.org/genai.
type Provider struct {
	models    contentEmbedder
	model     string
	dimension int
}

func NewProvider(ctx context.Context, apiKey, model string) (*Provider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newProvider(client.Models, model), nil
}

func newProvider(models contentEmbedder, model string) *Provider {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Provider{models: models, model: model, dimension: embedding.DefaultDimension}
}

func (p *Provider) Name() string {
	return "gemini:" + p.model
}

func (p *Provider) Dimension() int {
	return p.dimension
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if p == nil || p.models == nil {
		return nil, errors.New("gemini provider is not initialized")
	}

	res, err := p.models.EmbedContent(ctx, p.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embed content: %w", err)
	}
	if res == nil || len(res.Embeddings) == 0 || res.Embeddings[0] == nil || len(res.Embeddings[0].Values) == 0 {
		return nil, errNoEmbedding
	}
	return res.Embeddings[0].Values, nil
}
