package matching

import (
	"testing"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/match"
	"career-sync/internal/domain/skill"
	"career-sync/internal/domain/user"

	"github.com/stretchr/testify/assert"
)

func TestExplain_Reasons(t *testing.T) {
	cases := []struct {
		name     string
		score    int
		skill    float64
		interest float64
		want     []string
	}{
		{"strong everything", 85, 0.8, 0.6, []string{ReasonStrongSkills, ReasonInterests, ReasonExcellentFit}},
		{"foundation and transition", 65, 0.5, 0.5, []string{ReasonGoodFoundation, ReasonGoodTransition}},
		{"boundaries are exclusive", 60, 0.4, 0.5, []string{}},
		{"exactly 0.7 skill is only foundation", 81, 0.7, 0, []string{ReasonGoodFoundation, ReasonExcellentFit}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reasons, _ := Explain(user.Profile{}, career.Career{}, tc.score, tc.skill, tc.interest)
			assert.Equal(t, tc.want, reasons)
		})
	}
}

func TestSkillGaps_Completeness(t *testing.T) {
	required := []career.RequiredSkill{
		{Name: "Go", Level: skill.LevelAdvanced},
		{Name: "SQL", Level: skill.LevelIntermediate},
		{Name: "Kubernetes", Level: skill.LevelExpert},
		{Name: "Communication", Level: skill.LevelBeginner},
	}
	have := []user.ProfileSkill{
		{Name: "go", Level: skill.LevelIntermediate},
		{Name: "SQL", Level: skill.LevelExpert},
		{Name: "communication", Level: skill.LevelBeginner},
	}

	gaps := SkillGaps(have, required)

	assert.Equal(t, []match.SkillGap{
		{Skill: "Go", CurrentLevel: "intermediate", RequiredLevel: skill.LevelAdvanced},
		{Skill: "Kubernetes", CurrentLevel: match.LevelNone, RequiredLevel: skill.LevelExpert},
	}, gaps)

	inGaps := map[string]bool{}
	for _, g := range gaps {
		inGaps[g.Skill] = true
	}
	for _, r := range required {
		if inGaps[r.Name] {
			continue
		}
		var met bool
		for _, h := range have {
			if normalize(h.Name) == normalize(r.Name) && h.Level.Rank() >= r.Level.Rank() {
				met = true
			}
		}
		assert.True(t, met, "required skill %s neither met nor reported", r.Name)
	}
}

func TestSkillGaps_NoRequiredSkills(t *testing.T) {
	gaps := SkillGaps([]user.ProfileSkill{{Name: "Go"}}, nil)
	assert.NotNil(t, gaps)
	assert.Empty(t, gaps)
}
