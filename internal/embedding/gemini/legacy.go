package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-sync/internal/embedding"

	legacy "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultLegacyModel = "embedding-001"

type partEmbedder interface {
	EmbedContent(ctx context.Context, parts ...legacy.Part) (*legacy.EmbedContentResponse, error)
}

// LegacyProvider embeds text through the older generative-ai-go SDK and
// serves as the secondary provider.
type LegacyProvider struct {
	client *legacy.Client
	model  partEmbedder
	name   string
}

func NewLegacyProvider(ctx context.Context, apiKey, model string) (*LegacyProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := legacy.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create generative-ai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultLegacyModel
	}
	p := newLegacyProvider(client.EmbeddingModel(model), model)
	p.client = client
	return p, nil
}

func newLegacyProvider(model partEmbedder, name string) *LegacyProvider {
	return &LegacyProvider{model: model, name: name}
}

func (p *LegacyProvider) Name() string {
	return "generative-ai:" + p.name
}

func (p *LegacyProvider) Dimension() int {
	return embedding.DefaultDimension
}

func (p *LegacyProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if p == nil || p.model == nil {
		return nil, errors.New("legacy gemini provider is not initialized")
	}

	res, err := p.model.EmbedContent(ctx, legacy.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, errNoEmbedding
	}
	return res.Embedding.Values, nil
}

func (p *LegacyProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
