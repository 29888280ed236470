package user

import (
	"time"

	"career-sync/internal/domain/skill"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Experience string

const (
	ExperienceFresher  Experience = "fresher"
	Experience0To2     Experience = "0-2"
	Experience2To5     Experience = "2-5"
	Experience5To10    Experience = "5-10"
	Experience10Plus   Experience = "10+"
	ExperienceUnstated Experience = ""
)

func (e Experience) Valid() bool {
	switch e {
	case ExperienceFresher, Experience0To2, Experience2To5, Experience5To10, Experience10Plus, ExperienceUnstated:
		return true
	default:
		return false
	}
}

type ProfileSkill struct {
	Name     string      `json:"name"`
	Level    skill.Level `json:"level"`
	Verified bool        `json:"verified"`
}

type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        int    `json:"year,omitempty"`
}

// Profile is the read model the matching engine scores against.
// Interests and Skills are never nil once loaded.
type Profile struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Title      string
	Bio        string
	Location   string
	Experience Experience
	Interests  []string
	Skills     []ProfileSkill
	Education  []Education
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p Profile) CompletionPercentage() int {
	filled := 0
	total := 7
	if p.Title != "" {
		filled++
	}
	if p.Bio != "" {
		filled++
	}
	if p.Location != "" {
		filled++
	}
	if p.Experience != ExperienceUnstated {
		filled++
	}
	if len(p.Education) > 0 {
		filled++
	}
	if len(p.Interests) > 0 {
		filled++
	}
	if len(p.Skills) > 0 {
		filled++
	}
	return filled * 100 / total
}
