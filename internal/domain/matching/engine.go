package matching

import (
	"math"
	"sort"
	"strings"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/match"
	"career-sync/internal/domain/skill"
	"career-sync/internal/domain/user"
)

const (
	WeightSimilarity = 0.40
	WeightSkill      = 0.35
	WeightInterest   = 0.15
	WeightExperience = 0.10

	// MinScore is exclusive: a career scoring exactly MinScore is dropped.
	MinScore = 30

	neutralInterestMatch = 0.5
	flatExperienceMatch  = 0.8
)

type Breakdown struct {
	Similarity      float64
	SkillMatch      float64
	InterestMatch   float64
	ExperienceMatch float64
}

type Result struct {
	Career             career.Career
	CompatibilityScore int
	MatchReasons       []string
	SkillGaps          []match.SkillGap
}

// Calculate scores one career against a profile given the precomputed
// embedding similarity. ok is false when the career falls under MinScore.
func Calculate(p user.Profile, c career.Career, similarity float64) (Result, bool) {
	b := Breakdown{
		Similarity:      similarity,
		SkillMatch:      SkillMatch(p.Skills, c.Skills),
		InterestMatch:   InterestMatch(p.Interests, c),
		ExperienceMatch: ExperienceMatch(p.Experience, c),
	}
	score := CompatibilityScore(b)
	if score <= MinScore {
		return Result{}, false
	}

	reasons, gaps := Explain(p, c, score, b.SkillMatch, b.InterestMatch)
	return Result{
		Career:             c,
		CompatibilityScore: score,
		MatchReasons:       reasons,
		SkillGaps:          gaps,
	}, true
}

func CompatibilityScore(b Breakdown) int {
	total := b.Similarity*WeightSimilarity +
		b.SkillMatch*WeightSkill +
		b.InterestMatch*WeightInterest +
		b.ExperienceMatch*WeightExperience
	return clampInt(int(math.Round(math.Min(100, total*100))), 0, 100)
}

// LevelMatch grades how close a user's proficiency is to a requirement.
// Unknown user levels rank 0, unknown required levels rank 1.
func LevelMatch(userLevel, requiredLevel skill.Level) float64 {
	usr := userLevel.Rank()
	req := requiredLevel.Rank()
	if req == 0 {
		req = 1
	}

	switch {
	case usr >= req:
		return 1
	case usr == req-1:
		return 0.7
	case usr == req-2:
		return 0.4
	default:
		return 0.1
	}
}

// SkillMatch averages LevelMatch over the required skills. Names match when
// equal after trimming surrounding whitespace and lowercasing.
func SkillMatch(userSkills []user.ProfileSkill, required []career.RequiredSkill) float64 {
	if len(userSkills) == 0 || len(required) == 0 {
		return 0
	}

	byName := indexSkills(userSkills)
	total := 0.0
	for _, r := range required {
		us, ok := byName[normalize(r.Name)]
		if !ok {
			continue
		}
		total += LevelMatch(us.Level, r.Level)
	}
	return total / float64(len(required))
}

func InterestMatch(interests []string, c career.Career) float64 {
	if len(interests) == 0 {
		return neutralInterestMatch
	}

	text := strings.ToLower(c.Title + " " + c.Description + " " + c.Industry)
	hits := 0
	for _, in := range interests {
		if strings.Contains(text, strings.ToLower(in)) {
			hits++
		}
	}
	return float64(hits) / float64(len(interests))
}

func ExperienceMatch(exp user.Experience, c career.Career) float64 {
	if exp != user.ExperienceFresher {
		return flatExperienceMatch
	}
	title := strings.ToLower(c.Title)
	if strings.Contains(title, "junior") || strings.Contains(title, "trainee") {
		return 1
	}
	return 0.7
}

// Rank orders results by score descending, keeping input order for ties,
// and truncates to limit. The input slice is reordered in place.
func Rank(results []Result, limit int) []Result {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompatibilityScore > results[j].CompatibilityScore
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func indexSkills(in []user.ProfileSkill) map[string]user.ProfileSkill {
	out := make(map[string]user.ProfileSkill, len(in))
	for _, s := range in {
		key := normalize(s.Name)
		if _, dup := out[key]; dup {
			continue
		}
		out[key] = s
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
