package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"career-sync/internal/database"
	"career-sync/internal/domain/career"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

var ErrCareerNotFound = errors.New("career not found")

type CareerSearchFilter struct {
	// Patterns are ILIKE patterns matched against title, description and industry.
	Patterns      []string
	Industry      string
	SkillPatterns []string
	Limit         int
}

type CareerRepository interface {
	GetActiveCareers(ctx context.Context, limit int) ([]career.Career, error)
	GetByID(ctx context.Context, id uuid.UUID) (career.Career, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]career.Career, error)
	ListActive(ctx context.Context, limit, offset int) ([]career.Career, int, error)
	SearchActive(ctx context.Context, f CareerSearchFilter) ([]career.Career, error)
	UpdateEmbedding(ctx context.Context, id uuid.UUID, vec []float32) error
	ListMissingEmbeddings(ctx context.Context, limit int) ([]career.Career, error)
}

type PostgresCareerRepository struct {
	db database.DB
}

func NewPostgresCareerRepository(db database.DB) *PostgresCareerRepository {
	return &PostgresCareerRepository{db: db}
}

const careerColumns = `id, title, COALESCE(description, ''), COALESCE(industry, ''),
	COALESCE(requirements, '[]'::jsonb), COALESCE(skills, '[]'::jsonb), COALESCE(salary_range, '{}'::jsonb),
	COALESCE(locations, '[]'::jsonb), COALESCE(growth_path, '[]'::jsonb),
	embedding, is_active, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanCareer(s scanner) (career.Career, error) {
	var c career.Career
	var emb *pgvector.Vector
	if err := s.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Industry,
		&c.Requirements,
		&c.Skills,
		&c.SalaryRange,
		&c.Locations,
		&c.GrowthPath,
		&emb,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return career.Career{}, err
	}
	if emb != nil {
		c.Embedding = emb.Slice()
	}
	return c, nil
}

func collectCareers(rows database.Rows) ([]career.Career, error) {
	defer rows.Close()

	out := make([]career.Career, 0)
	for rows.Next() {
		c, err := scanCareer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCareerRepository) GetActiveCareers(ctx context.Context, limit int) ([]career.Career, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+careerColumns+`
		 FROM careers
		 WHERE is_active = true
		 ORDER BY created_at ASC, id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectCareers(rows)
}

func (r *PostgresCareerRepository) GetByID(ctx context.Context, id uuid.UUID) (career.Career, error) {
	row := r.db.QueryRow(ctx, `SELECT `+careerColumns+` FROM careers WHERE id = $1`, id)
	c, err := scanCareer(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return career.Career{}, ErrCareerNotFound
		}
		return career.Career{}, err
	}
	return c, nil
}

func (r *PostgresCareerRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]career.Career, error) {
	out := make(map[uuid.UUID]career.Career, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+careerColumns+` FROM careers WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	items, err := collectCareers(rows)
	if err != nil {
		return nil, err
	}
	for _, c := range items {
		out[c.ID] = c
	}
	return out, nil
}

func (r *PostgresCareerRepository) ListActive(ctx context.Context, limit, offset int) ([]career.Career, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM careers WHERE is_active = true`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+careerColumns+`
		 FROM careers
		 WHERE is_active = true
		 ORDER BY title ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectCareers(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresCareerRepository) SearchActive(ctx context.Context, f CareerSearchFilter) ([]career.Career, error) {
	if f.Limit <= 0 {
		f.Limit = 100
	}
	var patterns, skillPatterns []string
	if len(f.Patterns) > 0 {
		patterns = f.Patterns
	}
	if len(f.SkillPatterns) > 0 {
		skillPatterns = f.SkillPatterns
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+careerColumns+`
		 FROM careers
		 WHERE is_active = true
		   AND ($1::text[] IS NULL OR title ILIKE ANY($1) OR description ILIKE ANY($1) OR industry ILIKE ANY($1))
		   AND ($2 = '' OR lower(industry) = lower($2))
		   AND ($3::text[] IS NULL OR EXISTS (
				SELECT 1 FROM jsonb_array_elements(skills) s WHERE s->>'name' ILIKE ANY($3)
		   ))
		 ORDER BY created_at ASC
		 LIMIT $4`,
		patterns, f.Industry, skillPatterns, f.Limit,
	)
	if err != nil {
		return nil, err
	}
	return collectCareers(rows)
}

func (r *PostgresCareerRepository) UpdateEmbedding(ctx context.Context, id uuid.UUID, vec []float32) error {
	if id == uuid.Nil || len(vec) == 0 {
		return nil
	}
	n, err := r.db.Exec(ctx,
		`UPDATE careers SET embedding = $2, updated_at = $3 WHERE id = $1`,
		id, pgvector.NewVector(vec), time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCareerNotFound
	}
	return nil
}

func (r *PostgresCareerRepository) ListMissingEmbeddings(ctx context.Context, limit int) ([]career.Career, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+careerColumns+`
		 FROM careers
		 WHERE is_active = true AND embedding IS NULL
		 ORDER BY created_at ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectCareers(rows)
}
