package user

import (
	"context"
	"errors"
	"strings"

	"career-sync/internal/domain/skill"
	"career-sync/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidExperience = errors.New("invalid experience level")
	ErrInvalidSkillLevel = errors.New("invalid skill level")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrInternal          = errors.New("internal error")
	ErrUserNotFound      = errors.New("user not found")
)

type SkillInput struct {
	Name     string
	Level    string
	Verified bool
}

type UpsertProfileInput struct {
	Title      string
	Bio        string
	Location   string
	Experience string
	Interests  []string
	Skills     []SkillInput
	Education  []user.Education
}

type Service struct {
	users    user.Repository
	profiles user.ProfileRepository
}

func NewService(users user.Repository, profiles user.ProfileRepository) *Service {
	return &Service{users: users, profiles: profiles}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

// GetCompleteProfile returns the profile only when it has enough data to be
// matched: a title and at least one interest.
func (s *Service) GetCompleteProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return user.Profile{}, ErrProfileIncomplete
		}
		return user.Profile{}, err
	}
	if strings.TrimSpace(p.Title) == "" || len(p.Interests) == 0 {
		return user.Profile{}, ErrProfileIncomplete
	}
	return p, nil
}

func (s *Service) UpsertProfile(ctx context.Context, userID uuid.UUID, in UpsertProfileInput) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrInvalidInput
	}

	exp := user.Experience(strings.ToLower(strings.TrimSpace(in.Experience)))
	if !exp.Valid() {
		return user.Profile{}, ErrInvalidExperience
	}

	skills, err := normalizeSkills(in.Skills)
	if err != nil {
		return user.Profile{}, err
	}

	education := make([]user.Education, 0, len(in.Education))
	for _, e := range in.Education {
		e.Degree = strings.TrimSpace(e.Degree)
		e.Field = strings.TrimSpace(e.Field)
		e.Institution = strings.TrimSpace(e.Institution)
		if e.Degree == "" && e.Field == "" && e.Institution == "" {
			continue
		}
		if e.Year < 0 {
			return user.Profile{}, ErrInvalidInput
		}
		education = append(education, e)
	}

	p := user.Profile{
		UserID:     userID,
		Title:      strings.TrimSpace(in.Title),
		Bio:        strings.TrimSpace(in.Bio),
		Location:   strings.TrimSpace(in.Location),
		Experience: exp,
		Interests:  normalizeInterests(in.Interests),
		Skills:     skills,
		Education:  education,
	}

	saved, err := s.profiles.Upsert(ctx, p)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	return saved, nil
}

// normalizeSkills trims names, lowercases levels and keeps the first entry
// for names that repeat case-insensitively.
func normalizeSkills(in []SkillInput) ([]user.ProfileSkill, error) {
	out := make([]user.ProfileSkill, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		level := skill.Level(strings.ToLower(strings.TrimSpace(s.Level)))
		if !level.Valid() {
			return nil, ErrInvalidSkillLevel
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, user.ProfileSkill{Name: name, Level: level, Verified: s.Verified})
	}
	return out, nil
}

func normalizeInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, it := range in {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		key := strings.ToLower(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
