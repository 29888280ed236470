package dto

import (
	"career-sync/internal/usecase"

	"github.com/google/uuid"
)

type EnhancedMatchResponse struct {
	ID                 uuid.UUID               `json:"id,omitzero"`
	CareerID           uuid.UUID               `json:"career_id"`
	Title              string                  `json:"title"`
	Description        string                  `json:"description"`
	CompatibilityScore int                     `json:"compatibility_score"`
	MatchReasons       []string                `json:"match_reasons"`
	SkillGaps          []SkillGapResponse      `json:"skill_gaps"`
	SalaryRange        SalaryRangeResponse     `json:"salary_range"`
	Skills             []RequiredSkillResponse `json:"skills"`
	Industry           string                  `json:"industry"`
	Locations          []string                `json:"locations"`
	GrowthPath         []GrowthStepResponse    `json:"growth_path"`
	Requirements       []string                `json:"requirements"`
}

type GenerateMatchesResponse struct {
	Message string                  `json:"message"`
	Matches []EnhancedMatchResponse `json:"matches"`
}

func EnhancedMatchFrom(m usecase.EnhancedMatch) EnhancedMatchResponse {
	return EnhancedMatchResponse{
		ID:                 m.ID,
		CareerID:           m.CareerID,
		Title:              m.Title,
		Description:        m.Description,
		CompatibilityScore: m.CompatibilityScore,
		MatchReasons:       nonNilStrings(m.MatchReasons),
		SkillGaps:          SkillGapsFrom(m.SkillGaps),
		SalaryRange:        SalaryRangeFrom(m.SalaryRange),
		Skills:             RequiredSkillsFrom(m.Skills),
		Industry:           m.Industry,
		Locations:          nonNilStrings(m.Locations),
		GrowthPath:         GrowthPathFrom(m.GrowthPath),
		Requirements:       nonNilStrings(m.Requirements),
	}
}

func EnhancedMatchesFrom(in []usecase.EnhancedMatch) []EnhancedMatchResponse {
	out := make([]EnhancedMatchResponse, 0, len(in))
	for _, m := range in {
		out = append(out, EnhancedMatchFrom(m))
	}
	return out
}
