package career

import (
	"time"

	"career-sync/internal/domain/skill"

	"github.com/google/uuid"
)

type RequiredSkill struct {
	Name     string         `json:"name"`
	Level    skill.Level    `json:"level"`
	Category skill.Category `json:"category"`
}

type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency,omitempty"`
}

type GrowthStep struct {
	Level       string      `json:"level"`
	Title       string      `json:"title"`
	SalaryRange SalaryRange `json:"salary_range"`
	Experience  string      `json:"experience"`
}

type Career struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Industry     string
	Requirements []string
	Skills       []RequiredSkill
	SalaryRange  SalaryRange
	Locations    []string
	GrowthPath   []GrowthStep
	// Embedding is nil until computed.
	Embedding []float32
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Career) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

// TopSkills returns at most n required skills in catalog order.
func (c Career) TopSkills(n int) []RequiredSkill {
	if n < 0 {
		n = 0
	}
	if len(c.Skills) <= n {
		return c.Skills
	}
	return c.Skills[:n]
}
