package dto

import (
	"time"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/match"

	"github.com/google/uuid"
)

type SalaryRangeResponse struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency,omitempty"`
}

type RequiredSkillResponse struct {
	Name     string `json:"name"`
	Level    string `json:"level"`
	Category string `json:"category,omitempty"`
}

type GrowthStepResponse struct {
	Level       string              `json:"level"`
	Title       string              `json:"title"`
	SalaryRange SalaryRangeResponse `json:"salary_range"`
	Experience  string              `json:"experience"`
}

type SkillGapResponse struct {
	Skill         string `json:"skill"`
	CurrentLevel  string `json:"current_level"`
	RequiredLevel string `json:"required_level"`
}

type CareerResponse struct {
	ID           uuid.UUID               `json:"id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Industry     string                  `json:"industry"`
	Requirements []string                `json:"requirements"`
	Skills       []RequiredSkillResponse `json:"skills"`
	SalaryRange  SalaryRangeResponse     `json:"salary_range"`
	Locations    []string                `json:"locations"`
	GrowthPath   []GrowthStepResponse    `json:"growth_path"`
	CreatedAt    time.Time               `json:"created_at"`
}

type CareerListResponse struct {
	Careers []CareerResponse `json:"careers"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type CareerSearchResponse struct {
	Careers []CareerResponse `json:"careers"`
	Total   int              `json:"total"`
}

type MatchScoreResponse struct {
	CompatibilityScore int                `json:"compatibility_score"`
	MatchReasons       []string           `json:"match_reasons"`
	SkillGaps          []SkillGapResponse `json:"skill_gaps"`
}

type CareerDetailResponse struct {
	Career     CareerResponse      `json:"career"`
	MatchScore *MatchScoreResponse `json:"match_score"`
}

func SalaryRangeFrom(s career.SalaryRange) SalaryRangeResponse {
	return SalaryRangeResponse{Min: s.Min, Max: s.Max, Currency: s.Currency}
}

func RequiredSkillsFrom(in []career.RequiredSkill) []RequiredSkillResponse {
	out := make([]RequiredSkillResponse, 0, len(in))
	for _, s := range in {
		out = append(out, RequiredSkillResponse{Name: s.Name, Level: string(s.Level), Category: string(s.Category)})
	}
	return out
}

func GrowthPathFrom(in []career.GrowthStep) []GrowthStepResponse {
	out := make([]GrowthStepResponse, 0, len(in))
	for _, g := range in {
		out = append(out, GrowthStepResponse{
			Level:       g.Level,
			Title:       g.Title,
			SalaryRange: SalaryRangeFrom(g.SalaryRange),
			Experience:  g.Experience,
		})
	}
	return out
}

func SkillGapsFrom(in []match.SkillGap) []SkillGapResponse {
	out := make([]SkillGapResponse, 0, len(in))
	for _, g := range in {
		out = append(out, SkillGapResponse{Skill: g.Skill, CurrentLevel: g.CurrentLevel, RequiredLevel: string(g.RequiredLevel)})
	}
	return out
}

func CareerFrom(c career.Career) CareerResponse {
	return CareerResponse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Industry:     c.Industry,
		Requirements: nonNilStrings(c.Requirements),
		Skills:       RequiredSkillsFrom(c.Skills),
		SalaryRange:  SalaryRangeFrom(c.SalaryRange),
		Locations:    nonNilStrings(c.Locations),
		GrowthPath:   GrowthPathFrom(c.GrowthPath),
		CreatedAt:    c.CreatedAt,
	}
}

func CareersFrom(in []career.Career) []CareerResponse {
	out := make([]CareerResponse, 0, len(in))
	for _, c := range in {
		out = append(out, CareerFrom(c))
	}
	return out
}

func MatchScoreFrom(m *match.CareerMatch) *MatchScoreResponse {
	if m == nil {
		return nil
	}
	return &MatchScoreResponse{
		CompatibilityScore: m.CompatibilityScore,
		MatchReasons:       nonNilStrings(m.MatchReasons),
		SkillGaps:          SkillGapsFrom(m.SkillGaps),
	}
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
