package skill

import "strings"

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

type Category string

const (
	CategoryTechnical Category = "technical"
	CategorySoft      Category = "soft"
	CategoryDomain    Category = "domain"
)

// Rank maps a level to 1..4. Unknown levels return 0.
func (l Level) Rank() int {
	switch Level(strings.ToLower(strings.TrimSpace(string(l)))) {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	default:
		return 0
	}
}

func (l Level) Valid() bool {
	return l.Rank() > 0
}

func (c Category) Valid() bool {
	switch c {
	case CategoryTechnical, CategorySoft, CategoryDomain:
		return true
	default:
		return false
	}
}
