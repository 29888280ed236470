package usecase

import (
	"context"
	"errors"
	"testing"

	"career-sync/internal/domain/matching"
	"career-sync/internal/domain/user"
	ucuser "career-sync/internal/usecase/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserLister struct {
	ids []uuid.UUID
	err error
}

func (f fakeUserLister) ListUserIDsWithProfile(_ context.Context, limit, offset int) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	if offset >= len(f.ids) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.ids) {
		end = len(f.ids)
	}
	return f.ids[offset:end], nil
}

type fakeProfileGetter struct {
	incomplete map[uuid.UUID]bool
}

func (f fakeProfileGetter) GetCompleteProfile(_ context.Context, userID uuid.UUID) (user.Profile, error) {
	if f.incomplete[userID] {
		return user.Profile{}, ucuser.ErrProfileIncomplete
	}
	p := testProfile()
	p.UserID = userID
	return p, nil
}

type fakeMatchingUsecase struct {
	errs   map[uuid.UUID]error
	limits []int
}

func (f *fakeMatchingUsecase) GenerateCareerMatches(_ context.Context, userID uuid.UUID, _ user.Profile, limit int) ([]matching.Result, error) {
	f.limits = append(f.limits, limit)
	if err := f.errs[userID]; err != nil {
		return nil, err
	}
	return []matching.Result{{CompatibilityScore: 70}, {CompatibilityScore: 50}}, nil
}

func (f *fakeMatchingUsecase) GetEnhancedCareerMatches(context.Context, uuid.UUID) ([]EnhancedMatch, error) {
	return nil, nil
}

func TestMatchRefresh_RefreshUser(t *testing.T) {
	uid := uuid.New()
	m := &fakeMatchingUsecase{}
	r := NewMatchRefresh(fakeUserLister{}, fakeProfileGetter{}, m, nil)

	n, err := r.RefreshUser(context.Background(), uid, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{5}, m.limits)

	r = NewMatchRefresh(fakeUserLister{}, fakeProfileGetter{incomplete: map[uuid.UUID]bool{uid: true}}, m, nil)
	_, err = r.RefreshUser(context.Background(), uid, 5)
	require.ErrorIs(t, err, ucuser.ErrProfileIncomplete)
}

func TestMatchRefresh_RefreshAllPages(t *testing.T) {
	ids := make([]uuid.UUID, refreshPageSize+3)
	for i := range ids {
		ids[i] = uuid.New()
	}
	incomplete := map[uuid.UUID]bool{ids[0]: true}
	m := &fakeMatchingUsecase{errs: map[uuid.UUID]error{ids[1]: errors.New("embedding down")}}

	report, err := NewMatchRefresh(fakeUserLister{ids: ids}, fakeProfileGetter{incomplete: incomplete}, m, nil).
		RefreshAll(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, RefreshReport{
		Users:      len(ids),
		Refreshed:  len(ids) - 2,
		Incomplete: 1,
		Failed:     1,
	}, report)
}

func TestMatchRefresh_RefreshAllAbortsWithoutCatalog(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	m := &fakeMatchingUsecase{errs: map[uuid.UUID]error{ids[0]: ErrNoCareersAvailable}}

	report, err := NewMatchRefresh(fakeUserLister{ids: ids}, fakeProfileGetter{}, m, nil).
		RefreshAll(context.Background(), 10)
	require.ErrorIs(t, err, ErrNoCareersAvailable)
	assert.Equal(t, 1, report.Users)
}

func TestMatchRefresh_ListError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewMatchRefresh(fakeUserLister{err: boom}, fakeProfileGetter{}, &fakeMatchingUsecase{}, nil).
		RefreshAll(context.Background(), 10)
	require.ErrorIs(t, err, boom)
}
