package seeder

import (
	"testing"

	"career-sync/internal/domain/career"
	"career-sync/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCareerCatalog(t *testing.T) {
	careers, err := LoadCareerCatalog()
	require.NoError(t, err)
	require.Len(t, careers, 10)

	titles := map[string]struct{}{}
	for _, c := range careers {
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Description)
		assert.NotEmpty(t, c.Industry)
		assert.NotEmpty(t, c.Skills)
		assert.True(t, c.IsActive)
		assert.LessOrEqual(t, c.SalaryRange.Min, c.SalaryRange.Max)
		for _, s := range c.Skills {
			assert.Truef(t, s.Level.Valid(), "%s: %s has level %q", c.Title, s.Name, s.Level)
			assert.Truef(t, s.Category.Valid(), "%s: %s has category %q", c.Title, s.Name, s.Category)
		}
		_, dup := titles[c.Title]
		assert.Falsef(t, dup, "duplicate title %s", c.Title)
		titles[c.Title] = struct{}{}
	}

	first := careers[0]
	assert.Equal(t, "Full Stack Developer", first.Title)
	assert.Equal(t, skill.LevelExpert, first.Skills[2].Level)
	assert.Equal(t, "INR_LPA", first.SalaryRange.Currency)
	assert.Len(t, first.GrowthPath, 4)
}

func TestCareerJSONColumns(t *testing.T) {
	args, err := careerJSONColumns(career.Career{
		Requirements: []string{"Ship code"},
		SalaryRange:  career.SalaryRange{Min: 1, Max: 2},
	})
	require.NoError(t, err)
	require.Len(t, args, 5)
	assert.JSONEq(t, `["Ship code"]`, string(args[0].([]byte)))
	assert.JSONEq(t, `null`, string(args[1].([]byte)))
	assert.JSONEq(t, `{"min":1,"max":2}`, string(args[2].([]byte)))
}

func TestDefaultsIncludeCareers(t *testing.T) {
	var names []string
	for _, s := range Defaults() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"careers"}, names)
}
