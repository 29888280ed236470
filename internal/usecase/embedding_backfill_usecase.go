package usecase

import (
	"context"
	"fmt"

	"career-sync/internal/domain/career"
	"career-sync/internal/embedding"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultBackfillBatch = 25

type MissingEmbeddingStore interface {
	ListMissingEmbeddings(ctx context.Context, limit int) ([]career.Career, error)
	UpdateEmbedding(ctx context.Context, id uuid.UUID, vec []float32) error
}

type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string) [][]float32
}

type BackfillReport struct {
	Updated int
	Failed  int
}

// EmbeddingBackfill stores embeddings for active careers that have none yet.
type EmbeddingBackfill struct {
	store     MissingEmbeddingStore
	embedder  BatchEmbedder
	cache     CatalogInvalidator
	logger    *zap.Logger
	batchSize int
}

func NewEmbeddingBackfill(store MissingEmbeddingStore, embedder BatchEmbedder, cache CatalogInvalidator, logger *zap.Logger, batchSize int) *EmbeddingBackfill {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batchSize <= 0 {
		batchSize = defaultBackfillBatch
	}
	return &EmbeddingBackfill{store: store, embedder: embedder, cache: cache, logger: logger, batchSize: batchSize}
}

// Run embeds batches until the store reports nothing missing. Careers whose
// embedding could not be computed stay listed by the store, so they are
// remembered, counted once and skipped in later batches. Cached catalog values
// are dropped when anything changed.
func (b *EmbeddingBackfill) Run(ctx context.Context) (BackfillReport, error) {
	var report BackfillReport
	failed := make(map[uuid.UUID]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		limit := b.batchSize + len(failed)
		listed, err := b.store.ListMissingEmbeddings(ctx, limit)
		if err != nil {
			return report, fmt.Errorf("list careers without embedding: %w", err)
		}
		pending := make([]career.Career, 0, b.batchSize)
		for _, c := range listed {
			if _, seen := failed[c.ID]; seen {
				continue
			}
			pending = append(pending, c)
			if len(pending) == b.batchSize {
				break
			}
		}
		if len(pending) == 0 {
			break
		}

		texts := make([]string, len(pending))
		for i, c := range pending {
			texts[i] = embedding.CareerText(c)
		}
		vecs := b.embedder.EmbedBatch(ctx, texts)

		for i, c := range pending {
			if i >= len(vecs) || isZeroVector(vecs[i]) {
				failed[c.ID] = struct{}{}
				report.Failed++
				b.logger.Warn("career embedding unavailable", zap.String("career", c.Title))
				continue
			}
			if err := b.store.UpdateEmbedding(ctx, c.ID, vecs[i]); err != nil {
				return report, fmt.Errorf("store embedding for %s: %w", c.Title, err)
			}
			report.Updated++
		}

		if len(listed) < limit {
			break
		}
	}

	if report.Updated > 0 && b.cache != nil {
		if err := b.cache.InvalidateCatalog(ctx); err != nil {
			b.logger.Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}
	b.logger.Info("embedding backfill finished",
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func isZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
