package store

import (
	"encoding/json"
	"math"
	"sort"

	"cv-generator/internal/domain"
)

// A setter assigns value to one field and reports whether the value had a
// usable type.
type setter[T any] func(*T, any) bool

func stringField[T any](get func(*T) *string) setter[T] {
	return func(r *T, v any) bool {
		s, ok := v.(string)
		if ok {
			*get(r) = s
		}
		return ok
	}
}

var experienceSetters = map[string]setter[domain.Experience]{
	"jobTitle":    stringField(func(e *domain.Experience) *string { return &e.JobTitle }),
	"company":     stringField(func(e *domain.Experience) *string { return &e.Company }),
	"location":    stringField(func(e *domain.Experience) *string { return &e.Location }),
	"startDate":   stringField(func(e *domain.Experience) *string { return &e.StartDate }),
	"endDate":     stringField(func(e *domain.Experience) *string { return &e.EndDate }),
	"description": stringField(func(e *domain.Experience) *string { return &e.Description }),
	"current": func(e *domain.Experience, v any) bool {
		b, ok := v.(bool)
		if ok {
			e.Current = b
		}
		return ok
	},
}

var educationSetters = map[string]setter[domain.Education]{
	"degree":         stringField(func(e *domain.Education) *string { return &e.Degree }),
	"institution":    stringField(func(e *domain.Education) *string { return &e.Institution }),
	"location":       stringField(func(e *domain.Education) *string { return &e.Location }),
	"graduationDate": stringField(func(e *domain.Education) *string { return &e.GraduationDate }),
	"gpa":            stringField(func(e *domain.Education) *string { return &e.GPA }),
	"description":    stringField(func(e *domain.Education) *string { return &e.Description }),
}

var skillSetters = map[string]setter[domain.Skill]{
	"name":     stringField(func(s *domain.Skill) *string { return &s.Name }),
	"category": stringField(func(s *domain.Skill) *string { return &s.Category }),
	"level": func(s *domain.Skill, v any) bool {
		n, ok := toInt(v)
		if ok {
			s.Level = n
		}
		return ok
	},
}

// toInt accepts the numeric shapes a decoded JSON body can produce.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

func keys[T any](m map[string]setter[T]) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ExperienceFields, EducationFields and SkillFields list the updatable field
// names of each record kind.
func ExperienceFields() []string { return keys(experienceSetters) }
func EducationFields() []string  { return keys(educationSetters) }
func SkillFields() []string      { return keys(skillSetters) }
