package usecase

import (
	"context"

	"career-sync/internal/domain/user"
	ucuser "career-sync/internal/usecase/user"

	"github.com/google/uuid"
)

type ProfileUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	GetCompleteProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpsertProfileInput) (user.Profile, error)
}

type Profile struct {
	svc *ucuser.Service
}

func NewProfileUsecase(users user.Repository, profiles user.ProfileRepository) *Profile {
	return &Profile{svc: ucuser.NewService(users, profiles)}
}

func (u *Profile) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.GetMe(ctx, userID)
}

func (u *Profile) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	return u.svc.GetProfile(ctx, userID)
}

func (u *Profile) GetCompleteProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	return u.svc.GetCompleteProfile(ctx, userID)
}

func (u *Profile) UpsertProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpsertProfileInput) (user.Profile, error) {
	return u.svc.UpsertProfile(ctx, userID, in)
}
