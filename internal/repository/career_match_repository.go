package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"career-sync/internal/database"
	"career-sync/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCareerMatchNotFound = errors.New("career match not found")

type CareerMatchRepository interface {
	DeleteMatchesForUser(ctx context.Context, userID uuid.UUID) error
	InsertMatches(ctx context.Context, userID uuid.UUID, matches []match.CareerMatch) error
	ReplaceMatchesForUser(ctx context.Context, userID uuid.UUID, matches []match.CareerMatch) error
	GetMatchesForUser(ctx context.Context, userID uuid.UUID, limit int) ([]match.CareerMatch, error)
	GetMatchForCareer(ctx context.Context, userID, careerID uuid.UUID) (match.CareerMatch, error)
}

type PostgresCareerMatchRepository struct {
	db database.DB
}

func NewPostgresCareerMatchRepository(db database.DB) *PostgresCareerMatchRepository {
	return &PostgresCareerMatchRepository{db: db}
}

type execer interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

func (r *PostgresCareerMatchRepository) DeleteMatchesForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM career_matches WHERE user_id = $1`, userID)
	return err
}

func (r *PostgresCareerMatchRepository) InsertMatches(ctx context.Context, userID uuid.UUID, matches []match.CareerMatch) error {
	return insertMatches(ctx, r.db, userID, matches)
}

// ReplaceMatchesForUser swaps the user's whole match set in one transaction.
func (r *PostgresCareerMatchRepository) ReplaceMatchesForUser(ctx context.Context, userID uuid.UUID, matches []match.CareerMatch) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM career_matches WHERE user_id = $1`, userID); err != nil {
			return err
		}
		return insertMatches(ctx, tx, userID, matches)
	})
}

func insertMatches(ctx context.Context, db execer, userID uuid.UUID, matches []match.CareerMatch) error {
	now := time.Now().UTC()
	for i, m := range matches {
		if m.CareerID == uuid.Nil {
			continue
		}
		id := m.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		createdAt := m.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		reasons := m.MatchReasons
		if reasons == nil {
			reasons = []string{}
		}
		gaps := m.SkillGaps
		if gaps == nil {
			gaps = []match.SkillGap{}
		}

		_, err := db.Exec(ctx,
			`INSERT INTO career_matches (id, user_id, career_id, compatibility_score, match_reasons, skill_gaps, rank, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			id,
			userID,
			m.CareerID,
			m.CompatibilityScore,
			reasons,
			gaps,
			i,
			createdAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

const matchColumns = `id, user_id, career_id, compatibility_score,
	COALESCE(match_reasons, '[]'::jsonb), COALESCE(skill_gaps, '[]'::jsonb), created_at`

func scanMatch(s scanner) (match.CareerMatch, error) {
	var m match.CareerMatch
	err := s.Scan(&m.ID, &m.UserID, &m.CareerID, &m.CompatibilityScore, &m.MatchReasons, &m.SkillGaps, &m.CreatedAt)
	return m, err
}

func (r *PostgresCareerMatchRepository) GetMatchesForUser(ctx context.Context, userID uuid.UUID, limit int) ([]match.CareerMatch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+matchColumns+`
		 FROM career_matches
		 WHERE user_id = $1
		 ORDER BY rank ASC, compatibility_score DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.CareerMatch, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCareerMatchRepository) GetMatchForCareer(ctx context.Context, userID, careerID uuid.UUID) (match.CareerMatch, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM career_matches WHERE user_id = $1 AND career_id = $2 LIMIT 1`,
		userID, careerID,
	)
	m, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return match.CareerMatch{}, ErrCareerMatchNotFound
		}
		return match.CareerMatch{}, err
	}
	return m, nil
}
