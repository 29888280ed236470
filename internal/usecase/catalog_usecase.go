package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/match"
	"career-sync/internal/repository"
	"career-sync/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCareerNotFound = errors.New("career not found")
	ErrInvalidInput   = errors.New("invalid input")
)

const (
	defaultCatalogPageSize = 20
	maxCatalogPageSize     = 100
	maxSearchResults       = 20
	searchCandidateLimit   = 200
	searchLockTTL          = 30 * time.Second
)

type CareerReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (career.Career, error)
	ListActive(ctx context.Context, limit, offset int) ([]career.Career, int, error)
	SearchActive(ctx context.Context, f repository.CareerSearchFilter) ([]career.Career, error)
}

type MatchReader interface {
	GetMatchForCareer(ctx context.Context, userID, careerID uuid.UUID) (match.CareerMatch, error)
}

type CareerListParams struct {
	Limit  int
	Offset int
}

type CareerPage struct {
	Careers []career.Career
	Total   int
	Limit   int
	Offset  int
}

type CareerSearchParams struct {
	Query    string
	Industry string
	Skills   []string
}

type CareerSearchResult struct {
	Careers []career.Career
	Total   int
}

type CareerDetail struct {
	Career career.Career
	Match  *match.CareerMatch
}

type CatalogUsecase interface {
	ListCareers(ctx context.Context, params CareerListParams) (CareerPage, error)
	SearchCareers(ctx context.Context, params CareerSearchParams) (CareerSearchResult, error)
	GetCareerDetail(ctx context.Context, careerID, userID uuid.UUID) (CareerDetail, error)
}

type Catalog struct {
	careers CareerReader
	matches MatchReader
	cache   SearchCache
	logger  *zap.Logger
}

func NewCatalogUsecase(careers CareerReader, matches MatchReader, cache SearchCache, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{careers: careers, matches: matches, cache: cache, logger: logger}
}

func (u *Catalog) ListCareers(ctx context.Context, params CareerListParams) (CareerPage, error) {
	limit := params.Limit
	if limit == 0 {
		limit = defaultCatalogPageSize
	}
	if limit < 0 || params.Offset < 0 {
		return CareerPage{}, ErrInvalidInput
	}
	if limit > maxCatalogPageSize {
		limit = maxCatalogPageSize
	}

	items, total, err := u.careers.ListActive(ctx, limit, params.Offset)
	if err != nil {
		u.logger.Error("list careers failed", zap.Error(err))
		return CareerPage{}, ErrInternal
	}
	return CareerPage{Careers: stripEmbeddings(items), Total: total, Limit: limit, Offset: params.Offset}, nil
}

func (u *Catalog) SearchCareers(ctx context.Context, params CareerSearchParams) (CareerSearchResult, error) {
	params.Query = strings.TrimSpace(params.Query)
	params.Industry = strings.TrimSpace(params.Industry)
	params.Skills = cleanTerms(params.Skills)
	qctx := search.ProcessQuery(params.Query)
	if len(qctx.Variants) == 0 && params.Industry == "" && len(params.Skills) == 0 {
		return CareerSearchResult{}, ErrInvalidInput
	}

	cacheKey := CareersSearchCacheKey(params)
	lockKey := CareersSearchLockKey(cacheKey)

	if u.cache != nil {
		var cached CareerSearchResult
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			u.logger.Debug("career search cache hit", zap.String("key", cacheKey))
			return cached, nil
		}
	}

	lockAcquired := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", searchLockTTL)
		if err == nil && ok {
			lockAcquired = true
		} else if err == nil {
			jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			select {
			case <-ctx.Done():
				return CareerSearchResult{}, ctx.Err()
			case <-time.After(300*time.Millisecond + jitter):
			}
			var cached CareerSearchResult
			if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
				return cached, nil
			}
			u.logger.Debug("career search lock wait fallback", zap.String("key", lockKey))
		}
	}

	rows, err := u.searchRows(ctx, qctx.Variants, params)
	if err != nil {
		u.logger.Error("career search failed", zap.Error(err))
		return CareerSearchResult{}, ErrInternal
	}

	if len(rows) == 0 {
		fb := search.FallbackFirstWord(qctx.Normalized)
		if fb != "" && fb != qctx.Normalized {
			fbCtx := search.ProcessQuery(fb)
			if rows2, err := u.searchRows(ctx, fbCtx.Variants, params); err == nil {
				rows = rows2
				qctx = fbCtx
			}
		}
	}

	ranked := rankCareers(rows, qctx.Variants, params.Skills)
	out := CareerSearchResult{Total: len(ranked), Careers: ranked}
	if len(out.Careers) > maxSearchResults {
		out.Careers = out.Careers[:maxSearchResults]
	}
	out.Careers = stripEmbeddings(out.Careers)

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, out, 0)
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}
	return out, nil
}

func (u *Catalog) searchRows(ctx context.Context, variants []string, params CareerSearchParams) ([]career.Career, error) {
	f := repository.CareerSearchFilter{
		Industry: params.Industry,
		Limit:    searchCandidateLimit,
	}
	for _, v := range variants {
		f.Patterns = append(f.Patterns, containsPattern(v))
	}
	for _, s := range params.Skills {
		f.SkillPatterns = append(f.SkillPatterns, containsPattern(s))
	}
	return u.careers.SearchActive(ctx, f)
}

func (u *Catalog) GetCareerDetail(ctx context.Context, careerID, userID uuid.UUID) (CareerDetail, error) {
	if careerID == uuid.Nil {
		return CareerDetail{}, ErrInvalidInput
	}

	c, err := u.careers.GetByID(ctx, careerID)
	if err != nil {
		if errors.Is(err, repository.ErrCareerNotFound) {
			return CareerDetail{}, ErrCareerNotFound
		}
		return CareerDetail{}, ErrInternal
	}
	c.Embedding = nil

	out := CareerDetail{Career: c}
	if userID == uuid.Nil || u.matches == nil {
		return out, nil
	}

	m, err := u.matches.GetMatchForCareer(ctx, userID, careerID)
	if err != nil {
		if !errors.Is(err, repository.ErrCareerMatchNotFound) {
			u.logger.Warn("load career match failed", zap.String("career_id", careerID.String()), zap.Error(err))
		}
		return out, nil
	}
	out.Match = &m
	return out, nil
}

func rankCareers(rows []career.Career, variants, skills []string) []career.Career {
	if len(rows) == 0 {
		return rows
	}
	input := make([]search.Career, 0, len(rows))
	for i, r := range rows {
		names := make([]string, 0, len(r.Skills))
		for _, s := range r.Skills {
			names = append(names, s.Name)
		}
		input = append(input, search.Career{
			OriginalIndex: i,
			ID:            r.ID,
			Title:         r.Title,
			Description:   r.Description,
			Industry:      r.Industry,
			Skills:        names,
		})
	}

	ranked := search.RankCareers(input, variants, skills)
	out := make([]career.Career, 0, len(rows))
	for _, it := range ranked {
		if it.OriginalIndex < 0 || it.OriginalIndex >= len(rows) {
			continue
		}
		out = append(out, rows[it.OriginalIndex])
	}
	if len(out) != len(rows) {
		return rows
	}
	return out
}

func stripEmbeddings(in []career.Career) []career.Career {
	out := make([]career.Career, len(in))
	for i, c := range in {
		c.Embedding = nil
		out[i] = c
	}
	return out
}

func cleanTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}
