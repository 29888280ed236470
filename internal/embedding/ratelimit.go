package embedding

import (
	"context"

	"golang.org/x/time/rate"
)

type rateLimited struct {
	Provider
	limiter *rate.Limiter
}

// RateLimited caps calls to p at rps per second. rps <= 0 returns p unchanged.
func RateLimited(p Provider, rps float64, burst int) Provider {
	if rps <= 0 || p == nil {
		return p
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimited{Provider: p, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (r *rateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.Provider.Embed(ctx, text)
}
