package user

import (
	"testing"

	"career-sync/internal/domain/skill"

	"github.com/stretchr/testify/assert"
)

func TestExperienceValid(t *testing.T) {
	for _, e := range []Experience{ExperienceFresher, Experience0To2, Experience2To5, Experience5To10, Experience10Plus, ExperienceUnstated} {
		assert.True(t, e.Valid(), "experience %q", e)
	}
	assert.False(t, Experience("20+").Valid())
}

func TestProfileCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0, Profile{}.CompletionPercentage())

	p := Profile{
		Title:      "Engineer",
		Bio:        "bio",
		Location:   "Jakarta",
		Experience: Experience2To5,
		Education:  []Education{{Degree: "BSc"}},
		Interests:  []string{"technology"},
		Skills:     []ProfileSkill{{Name: "Go", Level: skill.LevelAdvanced}},
	}
	assert.Equal(t, 100, p.CompletionPercentage())

	p.Bio = ""
	p.Location = ""
	assert.Equal(t, 71, p.CompletionPercentage())
}
