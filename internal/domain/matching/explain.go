package matching

import (
	"career-sync/internal/domain/career"
	"career-sync/internal/domain/match"
	"career-sync/internal/domain/user"
)

const (
	ReasonStrongSkills   = "Strong skill alignment with your technical background"
	ReasonGoodFoundation = "Good foundation with some skill development needed"
	ReasonInterests      = "Aligns well with your stated interests"
	ReasonExcellentFit   = "Excellent overall fit based on your profile"
	ReasonGoodTransition = "Good career transition opportunity"
)

func Explain(p user.Profile, c career.Career, score int, skillMatch, interestMatch float64) ([]string, []match.SkillGap) {
	reasons := make([]string, 0, 3)
	switch {
	case skillMatch > 0.7:
		reasons = append(reasons, ReasonStrongSkills)
	case skillMatch > 0.4:
		reasons = append(reasons, ReasonGoodFoundation)
	}
	if interestMatch > 0.5 {
		reasons = append(reasons, ReasonInterests)
	}
	switch {
	case score > 80:
		reasons = append(reasons, ReasonExcellentFit)
	case score > 60:
		reasons = append(reasons, ReasonGoodTransition)
	}

	return reasons, SkillGaps(p.Skills, c.Skills)
}

// SkillGaps lists every required skill the user lacks or holds below the
// required level, in the career's skill order.
func SkillGaps(userSkills []user.ProfileSkill, required []career.RequiredSkill) []match.SkillGap {
	byName := indexSkills(userSkills)
	gaps := make([]match.SkillGap, 0)
	for _, r := range required {
		us, ok := byName[normalize(r.Name)]
		if !ok {
			gaps = append(gaps, match.SkillGap{
				Skill:         r.Name,
				CurrentLevel:  match.LevelNone,
				RequiredLevel: r.Level,
			})
			continue
		}

		req := r.Level.Rank()
		if req == 0 {
			req = 1
		}
		if us.Level.Rank() < req {
			gaps = append(gaps, match.SkillGap{
				Skill:         r.Name,
				CurrentLevel:  string(us.Level),
				RequiredLevel: r.Level,
			})
		}
	}
	return gaps
}
