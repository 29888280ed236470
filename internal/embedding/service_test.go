package embedding

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name string
	dim  int
	vec  []float32
	err  error
	// failOn makes Embed fail only for texts containing this substring.
	failOn string

	mu    sync.Mutex
	calls int
}

func (s *stubProvider) Name() string   { return s.name }
func (s *stubProvider) Dimension() int { return s.dim }

func (s *stubProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.failOn != "" && strings.Contains(text, s.failOn) {
		return nil, errors.New("rejected")
	}
	return s.vec, nil
}

func TestServiceEmbed_FirstSuccessWins(t *testing.T) {
	primary := &stubProvider{name: "primary", err: errors.New("down")}
	secondary := &stubProvider{name: "secondary", vec: []float32{1, 0}}
	third := &stubProvider{name: "third", vec: []float32{0, 1}}
	svc := NewService([]Provider{primary, secondary, third})

	vec, err := svc.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, third.calls)
}

func TestServiceEmbed_AllFail(t *testing.T) {
	svc := NewService([]Provider{
		&stubProvider{name: "a", err: errors.New("a down")},
		&stubProvider{name: "b", vec: nil},
	})

	_, err := svc.Embed(context.Background(), "text")
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.ErrorIs(t, err, ErrEmptyEmbedding)
}

func TestServiceEmbed_NoProviders(t *testing.T) {
	_, err := NewService(nil).Embed(context.Background(), "text")
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
}

func TestServiceEmbed_CanceledContext(t *testing.T) {
	p := &stubProvider{name: "a", vec: []float32{1}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService([]Provider{p}).Embed(ctx, "text")
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, p.calls)
}

func TestServiceEmbedBatch_ZeroVectorOnFailure(t *testing.T) {
	p := &stubProvider{name: "a", dim: 4, vec: []float32{1, 2, 3, 4}, failOn: "bad"}
	svc := NewService([]Provider{p}, WithBatchConcurrency(2))

	out := svc.EmbedBatch(context.Background(), []string{"ok one", "bad one", "ok two"})
	require.Len(t, out, 3)
	assert.Equal(t, []float32{1, 2, 3, 4}, out[0])
	assert.Equal(t, make([]float32, 4), out[1])
	assert.Equal(t, []float32{1, 2, 3, 4}, out[2])
}

func TestServiceEmbedBatch_DefaultDimension(t *testing.T) {
	svc := NewService(nil)
	out := svc.EmbedBatch(context.Background(), []string{"x"})
	require.Len(t, out, 1)
	assert.Len(t, out[0], DefaultDimension)
}

func TestServiceProviders(t *testing.T) {
	svc := NewService([]Provider{&stubProvider{name: "a"}, nil, &stubProvider{name: "b"}})
	assert.Equal(t, []string{"a", "b"}, svc.Providers())
}

func TestRateLimited(t *testing.T) {
	p := &stubProvider{name: "a", vec: []float32{1}}
	assert.Same(t, Provider(p), RateLimited(p, 0, 1))

	limited := RateLimited(p, 100, 1)
	assert.Equal(t, "a", limited.Name())
	vec, err := limited.Embed(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, vec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RateLimited(p, 0.001, 1).Embed(ctx, "x")
	assert.Error(t, err)
}
