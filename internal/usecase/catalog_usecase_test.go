package usecase

import (
	"context"
	"errors"
	"testing"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/match"
	"career-sync/internal/domain/skill"
	"career-sync/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCareerRepo struct {
	items    []career.Career
	total    int
	err      error
	filters  []repository.CareerSearchFilter
	search   func(f repository.CareerSearchFilter) []career.Career
	gotLimit int
}

func (m *mockCareerRepo) GetByID(_ context.Context, id uuid.UUID) (career.Career, error) {
	if m.err != nil {
		return career.Career{}, m.err
	}
	for _, c := range m.items {
		if c.ID == id {
			return c, nil
		}
	}
	return career.Career{}, repository.ErrCareerNotFound
}

func (m *mockCareerRepo) ListActive(_ context.Context, limit, _ int) ([]career.Career, int, error) {
	m.gotLimit = limit
	return m.items, m.total, m.err
}

func (m *mockCareerRepo) SearchActive(_ context.Context, f repository.CareerSearchFilter) ([]career.Career, error) {
	m.filters = append(m.filters, f)
	if m.err != nil {
		return nil, m.err
	}
	if m.search != nil {
		return m.search(f), nil
	}
	return m.items, nil
}

type mockMatchReader struct {
	m   match.CareerMatch
	err error
}

func (m mockMatchReader) GetMatchForCareer(context.Context, uuid.UUID, uuid.UUID) (match.CareerMatch, error) {
	return m.m, m.err
}

func catalogCareer(title, desc string, skills ...string) career.Career {
	c := career.Career{ID: uuid.New(), Title: title, Description: desc, Industry: "Technology", IsActive: true, Embedding: []float32{1, 2}}
	for _, s := range skills {
		c.Skills = append(c.Skills, career.RequiredSkill{Name: s, Level: skill.LevelIntermediate})
	}
	return c
}

func TestCatalog_ListCareers_Limits(t *testing.T) {
	repo := &mockCareerRepo{items: []career.Career{catalogCareer("UX Designer", "")}, total: 7}
	uc := NewCatalogUsecase(repo, nil, nil, nil)

	page, err := uc.ListCareers(context.Background(), CareerListParams{})
	require.NoError(t, err)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, 7, page.Total)
	assert.Nil(t, page.Careers[0].Embedding)

	page, err = uc.ListCareers(context.Background(), CareerListParams{Limit: 500, Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.gotLimit)
	assert.Equal(t, 3, page.Offset)

	_, err = uc.ListCareers(context.Background(), CareerListParams{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.ListCareers(context.Background(), CareerListParams{Offset: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalog_ListCareers_RepoError(t *testing.T) {
	uc := NewCatalogUsecase(&mockCareerRepo{err: errors.New("boom")}, nil, nil, nil)
	_, err := uc.ListCareers(context.Background(), CareerListParams{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCatalog_SearchCareers_RequiresFilter(t *testing.T) {
	uc := NewCatalogUsecase(&mockCareerRepo{}, nil, nil, nil)
	_, err := uc.SearchCareers(context.Background(), CareerSearchParams{Query: "  ", Skills: []string{" "}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.SearchCareers(context.Background(), CareerSearchParams{Query: "!!"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalog_SearchCareers_RanksAndBuildsFilter(t *testing.T) {
	descOnly := catalogCareer("Product Manager", "Work closely with designers", "Roadmapping")
	titleHit := catalogCareer("UX Designer", "Design user flows", "Figma")
	repo := &mockCareerRepo{items: []career.Career{descOnly, titleHit}}
	uc := NewCatalogUsecase(repo, nil, nil, nil)

	res, err := uc.SearchCareers(context.Background(), CareerSearchParams{Query: "Designer", Industry: "technology", Skills: []string{"fig_ma%"}})
	require.NoError(t, err)
	require.Len(t, res.Careers, 2)
	assert.Equal(t, titleHit.ID, res.Careers[0].ID)
	assert.Equal(t, 2, res.Total)
	assert.Nil(t, res.Careers[0].Embedding)

	require.Len(t, repo.filters, 1)
	f := repo.filters[0]
	assert.Contains(t, f.Patterns, "%designer%")
	assert.Equal(t, "technology", f.Industry)
	assert.Equal(t, []string{`%fig\_ma\%%`}, f.SkillPatterns)
}

func TestCatalog_SearchCareers_CapsResults(t *testing.T) {
	items := make([]career.Career, 0, 25)
	for i := 0; i < 25; i++ {
		items = append(items, catalogCareer("Data Analyst", ""))
	}
	uc := NewCatalogUsecase(&mockCareerRepo{items: items}, nil, nil, nil)

	res, err := uc.SearchCareers(context.Background(), CareerSearchParams{Industry: "Technology"})
	require.NoError(t, err)
	assert.Len(t, res.Careers, 20)
	assert.Equal(t, 25, res.Total)
}

func TestCatalog_SearchCareers_FallsBackToFirstWord(t *testing.T) {
	hit := catalogCareer("Backend Engineer", "")
	repo := &mockCareerRepo{search: func(f repository.CareerSearchFilter) []career.Career {
		for _, p := range f.Patterns {
			if p == "%backend%" {
				return []career.Career{hit}
			}
		}
		return nil
	}}
	uc := NewCatalogUsecase(repo, nil, nil, nil)

	res, err := uc.SearchCareers(context.Background(), CareerSearchParams{Query: "backend wizard"})
	require.NoError(t, err)
	require.Len(t, res.Careers, 1)
	assert.Equal(t, hit.ID, res.Careers[0].ID)
	assert.Len(t, repo.filters, 2)
}

func TestCatalog_SearchCareers_UsesCache(t *testing.T) {
	repo := &mockCareerRepo{items: []career.Career{catalogCareer("Content Writer", "")}}
	cache := newFakeCache()
	uc := NewCatalogUsecase(repo, nil, cache, nil)

	params := CareerSearchParams{Query: "writer"}
	first, err := uc.SearchCareers(context.Background(), params)
	require.NoError(t, err)
	second, err := uc.SearchCareers(context.Background(), CareerSearchParams{Query: "  WRITER "})
	require.NoError(t, err)

	assert.Equal(t, first.Careers[0].ID, second.Careers[0].ID)
	assert.Len(t, repo.filters, 1)
	assert.Contains(t, cache.deleted, CareersSearchLockKey(CareersSearchCacheKey(params)))
}

func TestCatalog_GetCareerDetail(t *testing.T) {
	c := catalogCareer("DevOps Engineer", "")
	userID := uuid.New()
	m := match.CareerMatch{ID: uuid.New(), UserID: userID, CareerID: c.ID, CompatibilityScore: 55}

	uc := NewCatalogUsecase(&mockCareerRepo{items: []career.Career{c}}, mockMatchReader{m: m}, nil, nil)
	d, err := uc.GetCareerDetail(context.Background(), c.ID, userID)
	require.NoError(t, err)
	require.NotNil(t, d.Match)
	assert.Equal(t, 55, d.Match.CompatibilityScore)
	assert.Nil(t, d.Career.Embedding)

	uc = NewCatalogUsecase(&mockCareerRepo{items: []career.Career{c}}, mockMatchReader{err: repository.ErrCareerMatchNotFound}, nil, nil)
	d, err = uc.GetCareerDetail(context.Background(), c.ID, userID)
	require.NoError(t, err)
	assert.Nil(t, d.Match)

	_, err = uc.GetCareerDetail(context.Background(), uuid.New(), userID)
	assert.ErrorIs(t, err, ErrCareerNotFound)
	_, err = uc.GetCareerDetail(context.Background(), uuid.Nil, userID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCareersSearchCacheKey_Normalized(t *testing.T) {
	a := CareersSearchCacheKey(CareerSearchParams{Query: "Data  Scientist", Skills: []string{"SQL", "python"}})
	b := CareersSearchCacheKey(CareerSearchParams{Query: " data scientist", Skills: []string{"Python", "sql", " "}})
	assert.Equal(t, a, b)
	assert.Contains(t, a, "careers:search:")
	assert.Equal(t, "careers:lock:"+a[len("careers:search:"):], CareersSearchLockKey(a))
}
