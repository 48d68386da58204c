package preview

import (
	"time"

	"cv-generator/internal/domain"
)

const (
	monthInput  = "2006-01"
	monthOutput = "Jan 2006"
)

// FormatMonth renders a year-month string as "May 2023". Empty input stays
// empty; input that is not a year-month is returned unchanged.
func FormatMonth(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(monthInput, s)
	if err != nil {
		return s
	}
	return t.Format(monthOutput)
}

// EndLabel is "Present" for a current role, otherwise the formatted end date.
func EndLabel(e domain.Experience) string {
	if e.Current {
		return "Present"
	}
	return FormatMonth(e.EndDate)
}

type SkillGroup struct {
	Category string
	Skills   []domain.Skill
}

// GroupSkills partitions skills by category. Groups appear in the order their
// category is first seen and keep insertion order inside.
func GroupSkills(skills []domain.Skill) []SkillGroup {
	var groups []SkillGroup
	index := map[string]int{}
	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}
