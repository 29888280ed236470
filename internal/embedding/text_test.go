package embedding

import (
	"testing"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/skill"
	"career-sync/internal/domain/user"

	"github.com/stretchr/testify/assert"
)

func TestProfileText(t *testing.T) {
	p := user.Profile{
		Title:      "Frontend Developer",
		Bio:        "I build UIs",
		Experience: user.Experience2To5,
		Skills: []user.ProfileSkill{
			{Name: "React", Level: skill.LevelAdvanced},
			{Name: "CSS", Level: skill.LevelExpert},
		},
		Interests: []string{"design", "technology"},
	}
	assert.Equal(t,
		"Frontend Developer. I build UIs. Experience level: 2-5. Skills: React (advanced), CSS (expert). Interests: design, technology",
		ProfileText(p),
	)
}

func TestProfileText_OmitsEmpty(t *testing.T) {
	assert.Equal(t, "Experience level: Unknown", ProfileText(user.Profile{}))
}

func TestCareerText(t *testing.T) {
	c := career.Career{
		Title:       "DevOps Engineer",
		Description: "Automate infrastructure",
		Industry:    "Technology",
		Skills: []career.RequiredSkill{
			{Name: "Docker", Level: skill.LevelAdvanced},
			{Name: "AWS", Level: skill.LevelIntermediate},
		},
	}
	assert.Equal(t,
		"DevOps Engineer. Automate infrastructure. Technology. Required skills: Docker (advanced), AWS (intermediate)",
		CareerText(c),
	)
}
