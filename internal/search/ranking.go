package search

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

const maxRelevance = 10

type Career struct {
	OriginalIndex int
	ID            uuid.UUID
	Title         string
	Description   string
	Industry      string
	Skills        []string
}

// ComputeRelevance scores a career against query variants: a title hit is
// worth 3, a description or industry hit 1 each, capped at maxRelevance.
func ComputeRelevance(c Career, queryVariants []string) float64 {
	if len(queryVariants) == 0 {
		return 0
	}

	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Description)
	industry := strings.ToLower(c.Industry)

	score := 0.0
	for _, v := range queryVariants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if strings.Contains(title, v) {
			score += 3
		}
		if strings.Contains(desc, v) {
			score += 1
		}
		if strings.Contains(industry, v) {
			score += 1
		}
		if score >= maxRelevance {
			return maxRelevance
		}
	}
	return score
}

// SkillHits counts wanted skills found as a substring of any career skill name.
func SkillHits(c Career, wanted []string) int {
	hits := 0
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		for _, s := range c.Skills {
			if strings.Contains(strings.ToLower(s), w) {
				hits++
				break
			}
		}
	}
	return hits
}

// RankCareers orders careers by relevance plus skill hits, descending.
// Ties keep their input order.
func RankCareers(careers []Career, queryVariants, skills []string) []Career {
	if len(careers) == 0 {
		return careers
	}

	type scored struct {
		idx   int
		score float64
	}
	items := make([]scored, len(careers))
	for i := range careers {
		items[i] = scored{
			idx:   i,
			score: ComputeRelevance(careers[i], queryVariants) + float64(SkillHits(careers[i], skills)),
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	out := make([]Career, 0, len(careers))
	for _, it := range items {
		out = append(out, careers[it.idx])
	}
	return out
}
