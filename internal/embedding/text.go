package embedding

import (
	"fmt"
	"strings"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/user"
)

// ProfileText flattens a profile into the sentence list sent to the model.
// Empty fields are left out.
func ProfileText(p user.Profile) string {
	parts := make([]string, 0, 5)
	if t := strings.TrimSpace(p.Title); t != "" {
		parts = append(parts, t)
	}
	if b := strings.TrimSpace(p.Bio); b != "" {
		parts = append(parts, b)
	}

	exp := string(p.Experience)
	if exp == "" {
		exp = "Unknown"
	}
	parts = append(parts, "Experience level: "+exp)

	if len(p.Skills) > 0 {
		skills := make([]string, 0, len(p.Skills))
		for _, s := range p.Skills {
			skills = append(skills, fmt.Sprintf("%s (%s)", s.Name, s.Level))
		}
		parts = append(parts, "Skills: "+strings.Join(skills, ", "))
	}
	if len(p.Interests) > 0 {
		parts = append(parts, "Interests: "+strings.Join(p.Interests, ", "))
	}

	return strings.Join(parts, ". ")
}

func CareerText(c career.Career) string {
	skills := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		skills = append(skills, fmt.Sprintf("%s (%s)", s.Name, s.Level))
	}
	return strings.Join([]string{
		c.Title,
		c.Description,
		c.Industry,
		"Required skills: " + strings.Join(skills, ", "),
	}, ". ")
}
