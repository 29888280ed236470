package usecase

import (
	"context"
	"errors"
	"fmt"

	"career-sync/internal/domain/user"
	ucuser "career-sync/internal/usecase/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const refreshPageSize = 100

type UserIDLister interface {
	ListUserIDsWithProfile(ctx context.Context, limit, offset int) ([]uuid.UUID, error)
}

type CompleteProfileGetter interface {
	GetCompleteProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
}

type RefreshReport struct {
	Users      int
	Refreshed  int
	Incomplete int
	Failed     int
}

// MatchRefresh regenerates stored matches for users, one at a time.
type MatchRefresh struct {
	users    UserIDLister
	profiles CompleteProfileGetter
	matching CareerMatchingUsecase
	logger   *zap.Logger
}

func NewMatchRefresh(users UserIDLister, profiles CompleteProfileGetter, matching CareerMatchingUsecase, logger *zap.Logger) *MatchRefresh {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchRefresh{users: users, profiles: profiles, matching: matching, logger: logger}
}

// RefreshUser regenerates matches for one user and returns how many were kept.
func (r *MatchRefresh) RefreshUser(ctx context.Context, userID uuid.UUID, limit int) (int, error) {
	profile, err := r.profiles.GetCompleteProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	results, err := r.matching.GenerateCareerMatches(ctx, userID, profile, limit)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// RefreshAll pages through every user with a profile. Users with incomplete
// profiles are counted and skipped; other failures are logged and counted.
// A missing catalog aborts the run.
func (r *MatchRefresh) RefreshAll(ctx context.Context, limit int) (RefreshReport, error) {
	var report RefreshReport
	for offset := 0; ; offset += refreshPageSize {
		ids, err := r.users.ListUserIDsWithProfile(ctx, refreshPageSize, offset)
		if err != nil {
			return report, fmt.Errorf("list users: %w", err)
		}

		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			report.Users++

			_, err := r.RefreshUser(ctx, id, limit)
			switch {
			case err == nil:
				report.Refreshed++
			case errors.Is(err, ucuser.ErrProfileIncomplete):
				report.Incomplete++
			case errors.Is(err, ErrNoCareersAvailable):
				return report, err
			default:
				report.Failed++
				r.logger.Warn("match refresh failed", zap.String("user_id", id.String()), zap.Error(err))
			}
		}

		if len(ids) < refreshPageSize {
			break
		}
	}
	return report, nil
}
