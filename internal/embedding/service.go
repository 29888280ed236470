package embedding

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrAllProvidersFailed = errors.New("all embedding providers failed")
	ErrEmptyEmbedding     = errors.New("provider returned an empty embedding")
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) [][]float32
}

// Service tries its providers in order and returns the first vector produced.
type Service struct {
	providers   []Provider
	log         *zap.Logger
	concurrency int
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBatchConcurrency bounds parallel calls made by EmbedBatch.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewService(providers []Provider, opts ...Option) *Service {
	s := &Service{
		providers:   make([]Provider, 0, len(providers)),
		log:         zap.NewNop(),
		concurrency: 4,
	}
	for _, p := range providers {
		if p != nil {
			s.providers = append(s.providers, p)
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Providers() []string {
	out := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, p.Name())
	}
	return out
}

// Dimension reports the first provider's vector length.
func (s *Service) Dimension() int {
	if len(s.providers) == 0 {
		return DefaultDimension
	}
	if d := s.providers[0].Dimension(); d > 0 {
		return d
	}
	return DefaultDimension
}

func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for _, p := range s.providers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, err)
		}

		vec, err := p.Embed(ctx, text)
		if err == nil && len(vec) == 0 {
			err = ErrEmptyEmbedding
		}
		if err != nil {
			s.log.Warn("embedding provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		return vec, nil
	}

	if lastErr == nil {
		return nil, ErrAllProvidersFailed
	}
	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// EmbedBatch returns one vector per input. A text that no provider can
// embed yields a zero vector of Dimension() length instead of an error.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) [][]float32 {
	out := make([][]float32, len(texts))

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, text := range texts {
		g.Go(func() error {
			vec, err := s.Embed(ctx, text)
			if err != nil {
				s.log.Warn("batch embedding item failed, using zero vector",
					zap.Int("index", i),
					zap.Error(err),
				)
				vec = make([]float32, s.Dimension())
			}
			out[i] = vec
			return nil
		})
	}
	_ = g.Wait()

	return out
}
