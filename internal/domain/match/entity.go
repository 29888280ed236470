package match

import (
	"time"

	"career-sync/internal/domain/skill"

	"github.com/google/uuid"
)

// LevelNone marks a required skill the user does not have at all.
const LevelNone = "none"

type SkillGap struct {
	Skill         string      `json:"skill"`
	CurrentLevel  string      `json:"current_level"`
	RequiredLevel skill.Level `json:"required_level"`
}

type CareerMatch struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	CareerID           uuid.UUID
	CompatibilityScore int
	MatchReasons       []string
	SkillGaps          []SkillGap
	CreatedAt          time.Time
}
