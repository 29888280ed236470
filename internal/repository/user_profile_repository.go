package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"career-sync/internal/database"
	"career-sync/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresUserProfileRepository struct {
	db database.DB
}

func NewPostgresUserProfileRepository(db database.DB) *PostgresUserProfileRepository {
	return &PostgresUserProfileRepository{db: db}
}

const profileColumns = `id, user_id, COALESCE(title, ''), COALESCE(bio, ''), COALESCE(location, ''), COALESCE(experience, ''),
	COALESCE(interests, '[]'::jsonb), COALESCE(skills, '[]'::jsonb), COALESCE(education, '[]'::jsonb),
	created_at, updated_at`

func scanProfile(s scanner) (user.Profile, error) {
	var p user.Profile
	var exp string
	err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Bio,
		&p.Location,
		&exp,
		&p.Interests,
		&p.Skills,
		&p.Education,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return user.Profile{}, err
	}
	p.Experience = user.Experience(exp)
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Skills == nil {
		p.Skills = []user.ProfileSkill{}
	}
	return p, nil
}

func (r *PostgresUserProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, user.ErrProfileNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}

func (r *PostgresUserProfileRepository) Upsert(ctx context.Context, p user.Profile) (user.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	skills := p.Skills
	if skills == nil {
		skills = []user.ProfileSkill{}
	}
	education := p.Education
	if education == nil {
		education = []user.Education{}
	}
	now := time.Now().UTC()

	row := r.db.QueryRow(ctx,
		`INSERT INTO user_profiles (id, user_id, title, bio, location, experience, interests, skills, education, created_at, updated_at)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $10)
		 ON CONFLICT (user_id) DO UPDATE SET
			title = EXCLUDED.title,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			experience = EXCLUDED.experience,
			interests = EXCLUDED.interests,
			skills = EXCLUDED.skills,
			education = EXCLUDED.education,
			updated_at = EXCLUDED.updated_at
		 RETURNING `+profileColumns,
		p.ID, p.UserID, p.Title, p.Bio, p.Location, string(p.Experience), interests, skills, education, now,
	)
	return scanProfile(row)
}
