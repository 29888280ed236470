package embedding

import "context"

// DefaultDimension is the vector length used when a provider cannot say
// otherwise, matching text-embedding-004 output.
const DefaultDimension = 768

type Provider interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
}
