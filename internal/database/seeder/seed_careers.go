package seeder

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"career-sync/internal/database"
	"career-sync/internal/domain/career"

	"github.com/google/uuid"
)

//go:embed careers.json
var careersJSON []byte

type seedCareer struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Industry     string                 `json:"industry"`
	Requirements []string               `json:"requirements"`
	Skills       []career.RequiredSkill `json:"skills"`
	SalaryRange  career.SalaryRange     `json:"salary_range"`
	Locations    []string               `json:"locations"`
	GrowthPath   []career.GrowthStep    `json:"growth_path"`
}

// LoadCareerCatalog decodes the bundled starter catalog.
func LoadCareerCatalog() ([]career.Career, error) {
	var items []seedCareer
	if err := json.Unmarshal(careersJSON, &items); err != nil {
		return nil, fmt.Errorf("decode careers catalog: %w", err)
	}

	out := make([]career.Career, 0, len(items))
	for _, it := range items {
		out = append(out, career.Career{
			Title:        it.Title,
			Description:  it.Description,
			Industry:     it.Industry,
			Requirements: it.Requirements,
			Skills:       it.Skills,
			SalaryRange:  it.SalaryRange,
			Locations:    it.Locations,
			GrowthPath:   it.GrowthPath,
			IsActive:     true,
		})
	}
	return out, nil
}

// CareersSeeder inserts the starter catalog. Existing titles are left alone,
// so rerunning it keeps computed embeddings.
type CareersSeeder struct{}

func (CareersSeeder) Name() string { return "careers" }

func (CareersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "careers",
		"id", "title", "description", "industry", "requirements", "skills",
		"salary_range", "locations", "growth_path", "is_active",
	); err != nil {
		return err
	}

	careers, err := LoadCareerCatalog()
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, c := range careers {
			args, err := careerJSONColumns(c)
			if err != nil {
				return fmt.Errorf("encode %q: %w", c.Title, err)
			}
			_, err = tx.Exec(
				ctx,
				`INSERT INTO careers (id, title, description, industry, requirements, skills, salary_range, locations, growth_path, is_active)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
				 ON CONFLICT (title) DO NOTHING`,
				append([]any{uuid.New(), c.Title, c.Description, c.Industry}, args...)...,
			)
			if err != nil {
				return fmt.Errorf("insert %q: %w", c.Title, err)
			}
		}
		return nil
	})
}

// careerJSONColumns encodes the jsonb columns in insert order.
func careerJSONColumns(c career.Career) ([]any, error) {
	values := []any{c.Requirements, c.Skills, c.SalaryRange, c.Locations, c.GrowthPath}
	out := make([]any, 0, len(values))
	for _, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
