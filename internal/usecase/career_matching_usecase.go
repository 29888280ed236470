package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/match"
	"career-sync/internal/domain/matching"
	"career-sync/internal/domain/user"
	"career-sync/internal/embedding"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoCareersAvailable    = errors.New("no careers available for matching")
	ErrMatchGenerationFailed = errors.New("failed to generate career matches")
)

const (
	defaultCatalogLimit      = 100
	defaultMatchConcurrency  = 8
	defaultEnhancedLimit     = 10
	enhancedTopSkills        = 5
	writeBackTimeout         = 10 * time.Second
	EventCareerMatchesUpdate = "career_matches_updated"
)

type CatalogStore interface {
	GetActiveCareers(ctx context.Context, limit int) ([]career.Career, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]career.Career, error)
	UpdateEmbedding(ctx context.Context, id uuid.UUID, vec []float32) error
}

type MatchStore interface {
	ReplaceMatchesForUser(ctx context.Context, userID uuid.UUID, matches []match.CareerMatch) error
	GetMatchesForUser(ctx context.Context, userID uuid.UUID, limit int) ([]match.CareerMatch, error)
}

type TextEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type MatchNotifier interface {
	NotifyUser(userID uuid.UUID, event any)
}

type CareerMatchesUpdatedEvent struct {
	Type     string `json:"type"`
	Count    int    `json:"count"`
	TopScore int    `json:"top_score"`
}

type EnhancedMatch struct {
	ID                 uuid.UUID
	CareerID           uuid.UUID
	Title              string
	Description        string
	CompatibilityScore int
	MatchReasons       []string
	SkillGaps          []match.SkillGap
	SalaryRange        career.SalaryRange
	Skills             []career.RequiredSkill
	Industry           string
	Locations          []string
	GrowthPath         []career.GrowthStep
	Requirements       []string
}

type CareerMatchingUsecase interface {
	GenerateCareerMatches(ctx context.Context, userID uuid.UUID, profile user.Profile, limit int) ([]matching.Result, error)
	GetEnhancedCareerMatches(ctx context.Context, userID uuid.UUID) ([]EnhancedMatch, error)
}

type CareerMatchingOptions struct {
	Concurrency  int
	CatalogLimit int
	EmbeddingTTL time.Duration
	EnhancedTTL  time.Duration
}

type CareerMatching struct {
	catalog  CatalogStore
	matches  MatchStore
	embedder TextEmbedder
	cache    JSONCache
	notifier MatchNotifier
	logger   *zap.Logger
	opts     CareerMatchingOptions

	writeBacks sync.WaitGroup
}

func NewCareerMatchingUsecase(
	catalog CatalogStore,
	matches MatchStore,
	embedder TextEmbedder,
	cache JSONCache,
	notifier MatchNotifier,
	logger *zap.Logger,
	opts CareerMatchingOptions,
) *CareerMatching {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultMatchConcurrency
	}
	if opts.CatalogLimit <= 0 {
		opts.CatalogLimit = defaultCatalogLimit
	}
	return &CareerMatching{
		catalog:  catalog,
		matches:  matches,
		embedder: embedder,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
	}
}

// GenerateCareerMatches ranks the active catalog against profile, replaces the
// user's stored matches and returns the ranking. Careers whose embedding
// cannot be produced are left out; persistence failures are only logged.
func (u *CareerMatching) GenerateCareerMatches(ctx context.Context, userID uuid.UUID, profile user.Profile, limit int) ([]matching.Result, error) {
	if limit <= 0 {
		limit = defaultEnhancedLimit
	}
	log := u.logger.With(zap.String("user_id", userID.String()))

	careers, err := u.catalog.GetActiveCareers(ctx, u.opts.CatalogLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: load catalog: %w", ErrMatchGenerationFailed, err)
	}
	careers = activeOnly(careers)
	if len(careers) == 0 {
		return nil, ErrNoCareersAvailable
	}

	userVec, err := u.embedder.Embed(ctx, embedding.ProfileText(profile))
	if err != nil {
		return nil, fmt.Errorf("%w: profile embedding: %w", ErrMatchGenerationFailed, err)
	}

	slots := make([]*matching.Result, len(careers))
	var skipped atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(u.opts.Concurrency)
	for i, c := range careers {
		g.Go(func() error {
			vec, err := u.careerEmbedding(ctx, c, len(userVec))
			if err != nil {
				skipped.Add(1)
				log.Debug("career skipped: embedding unavailable", zap.String("career", c.Title), zap.Error(err))
				return nil
			}
			sim, err := embedding.CosineSimilarity(userVec, vec)
			if err != nil {
				skipped.Add(1)
				log.Debug("career skipped: similarity failed", zap.String("career", c.Title), zap.Error(err))
				return nil
			}
			if res, ok := matching.Calculate(profile, c, sim); ok {
				slots[i] = &res
			}
			return nil
		})
	}
	_ = g.Wait()

	results := make([]matching.Result, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	ranked := matching.Rank(results, limit)

	if n := skipped.Load(); n > 0 {
		log.Warn("careers skipped during matching", zap.Int64("skipped", n), zap.Int("catalog", len(careers)))
	}

	u.persist(ctx, userID, ranked, log)
	return ranked, nil
}

func (u *CareerMatching) persist(ctx context.Context, userID uuid.UUID, ranked []matching.Result, log *zap.Logger) {
	now := time.Now().UTC()
	rows := make([]match.CareerMatch, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, match.CareerMatch{
			ID:                 uuid.New(),
			UserID:             userID,
			CareerID:           r.Career.ID,
			CompatibilityScore: r.CompatibilityScore,
			MatchReasons:       r.MatchReasons,
			SkillGaps:          r.SkillGaps,
			CreatedAt:          now,
		})
	}

	if err := u.matches.ReplaceMatchesForUser(ctx, userID, rows); err != nil {
		log.Error("failed to save career matches", zap.Error(err))
		return
	}
	if u.cache != nil {
		_ = u.cache.Delete(ctx, EnhancedMatchesCacheKey(userID))
	}
	if u.notifier != nil {
		ev := CareerMatchesUpdatedEvent{Type: EventCareerMatchesUpdate, Count: len(ranked)}
		if len(ranked) > 0 {
			ev.TopScore = ranked[0].CompatibilityScore
		}
		u.notifier.NotifyUser(userID, ev)
	}
}

// careerEmbedding returns the stored vector when its length matches dim,
// then a cached one, and only then asks the embedder.
func (u *CareerMatching) careerEmbedding(ctx context.Context, c career.Career, dim int) ([]float32, error) {
	if c.HasEmbedding() && len(c.Embedding) == dim {
		return c.Embedding, nil
	}

	text := embedding.CareerText(c)
	key := CareerEmbeddingCacheKey(c.ID, text)
	if u.cache != nil {
		var cached []float32
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit && len(cached) == dim {
			return cached, nil
		}
	}

	vec, err := u.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	u.writeBack(ctx, c.ID, key, vec)
	return vec, nil
}

func (u *CareerMatching) writeBack(ctx context.Context, careerID uuid.UUID, key string, vec []float32) {
	u.writeBacks.Add(1)
	go func() {
		defer u.writeBacks.Done()
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeBackTimeout)
		defer cancel()

		if u.cache != nil {
			if err := u.cache.SetJSON(wctx, key, vec, u.opts.EmbeddingTTL); err != nil {
				u.logger.Debug("embedding cache write failed", zap.String("career_id", careerID.String()), zap.Error(err))
			}
		}
		if err := u.catalog.UpdateEmbedding(wctx, careerID, vec); err != nil {
			u.logger.Warn("embedding write-back failed", zap.String("career_id", careerID.String()), zap.Error(err))
		}
	}()
}

// WaitWriteBacks blocks until background embedding write-backs finish.
func (u *CareerMatching) WaitWriteBacks() {
	u.writeBacks.Wait()
}

func (u *CareerMatching) GetEnhancedCareerMatches(ctx context.Context, userID uuid.UUID) ([]EnhancedMatch, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	key := EnhancedMatchesCacheKey(userID)
	if u.cache != nil {
		var cached []EnhancedMatch
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	stored, err := u.matches.GetMatchesForUser(ctx, userID, defaultEnhancedLimit)
	if err != nil {
		u.logger.Error("failed to load career matches", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(stored))
	for _, m := range stored {
		ids = append(ids, m.CareerID)
	}
	careers, err := u.catalog.GetByIDs(ctx, ids)
	if err != nil {
		u.logger.Error("failed to load matched careers", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}

	out := make([]EnhancedMatch, 0, len(stored))
	for _, m := range stored {
		c, ok := careers[m.CareerID]
		if !ok {
			continue
		}
		out = append(out, EnhancedMatch{
			ID:                 m.ID,
			CareerID:           c.ID,
			Title:              c.Title,
			Description:        c.Description,
			CompatibilityScore: m.CompatibilityScore,
			MatchReasons:       m.MatchReasons,
			SkillGaps:          m.SkillGaps,
			SalaryRange:        c.SalaryRange,
			Skills:             c.TopSkills(enhancedTopSkills),
			Industry:           c.Industry,
			Locations:          c.Locations,
			GrowthPath:         c.GrowthPath,
			Requirements:       c.Requirements,
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, u.opts.EnhancedTTL)
	}
	return out, nil
}

// ToEnhancedMatch shapes a freshly generated result like a stored one.
func ToEnhancedMatch(r matching.Result) EnhancedMatch {
	return EnhancedMatch{
		ID:                 r.Career.ID,
		CareerID:           r.Career.ID,
		Title:              r.Career.Title,
		Description:        r.Career.Description,
		CompatibilityScore: r.CompatibilityScore,
		MatchReasons:       r.MatchReasons,
		SkillGaps:          r.SkillGaps,
		SalaryRange:        r.Career.SalaryRange,
		Skills:             r.Career.TopSkills(enhancedTopSkills),
		Industry:           r.Career.Industry,
		Locations:          r.Career.Locations,
		GrowthPath:         r.Career.GrowthPath,
		Requirements:       r.Career.Requirements,
	}
}

func CareerEmbeddingCacheKey(careerID uuid.UUID, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "career:embedding:" + careerID.String() + ":" + hex.EncodeToString(sum[:8])
}

func EnhancedMatchesCacheKey(userID uuid.UUID) string {
	return "matches:enhanced:" + userID.String()
}

func activeOnly(in []career.Career) []career.Career {
	out := in[:0:0]
	for _, c := range in {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
