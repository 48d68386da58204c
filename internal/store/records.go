// Package store holds the editable CV documents. Mutations are pure
// functions over domain.CV that return a new snapshot and never touch the
// slices of the input.
package store

import (
	"cv-generator/internal/domain"

	"github.com/google/uuid"
)

var newID = uuid.NewString

// PersonalPatch carries a partial PersonalInfo update; nil fields are kept.
type PersonalPatch struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Website  *string `json:"website,omitempty"`
	Summary  *string `json:"summary,omitempty"`
}

// FullPatch turns a complete PersonalInfo into a patch replacing every field.
func FullPatch(p domain.PersonalInfo) PersonalPatch {
	return PersonalPatch{
		FullName: &p.FullName,
		Email:    &p.Email,
		Phone:    &p.Phone,
		Location: &p.Location,
		LinkedIn: &p.LinkedIn,
		Website:  &p.Website,
		Summary:  &p.Summary,
	}
}

func SetPersonalInfo(cv domain.CV, patch PersonalPatch) domain.CV {
	p := cv.Personal
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.FullName, patch.FullName)
	set(&p.Email, patch.Email)
	set(&p.Phone, patch.Phone)
	set(&p.Location, patch.Location)
	set(&p.LinkedIn, patch.LinkedIn)
	set(&p.Website, patch.Website)
	set(&p.Summary, patch.Summary)
	cv.Personal = p
	return cv
}

func SetStyle(cv domain.CV, style domain.CVStyle) domain.CV {
	cv.Style = style
	return cv
}

// AddExperience appends an empty experience and returns its id.
func AddExperience(cv domain.CV) (domain.CV, string) {
	id := newID()
	cv.Experiences = appendCopy(cv.Experiences, domain.Experience{ID: id})
	return cv, id
}

func UpdateExperience(cv domain.CV, id, field string, value any) domain.CV {
	set, ok := experienceSetters[field]
	if !ok {
		return cv
	}
	cv.Experiences = replaceWhere(cv.Experiences, func(e domain.Experience) bool { return e.ID == id },
		func(e domain.Experience) (domain.Experience, bool) { return e, set(&e, value) })
	return cv
}

func RemoveExperience(cv domain.CV, id string) domain.CV {
	cv.Experiences = removeWhere(cv.Experiences, func(e domain.Experience) bool { return e.ID == id })
	return cv
}

func AddEducation(cv domain.CV) (domain.CV, string) {
	id := newID()
	cv.Education = appendCopy(cv.Education, domain.Education{ID: id})
	return cv, id
}

func UpdateEducation(cv domain.CV, id, field string, value any) domain.CV {
	set, ok := educationSetters[field]
	if !ok {
		return cv
	}
	cv.Education = replaceWhere(cv.Education, func(e domain.Education) bool { return e.ID == id },
		func(e domain.Education) (domain.Education, bool) { return e, set(&e, value) })
	return cv
}

func RemoveEducation(cv domain.CV, id string) domain.CV {
	cv.Education = removeWhere(cv.Education, func(e domain.Education) bool { return e.ID == id })
	return cv
}

// AddSkill appends an unnamed skill at the default level.
func AddSkill(cv domain.CV) (domain.CV, string) {
	return AddSkillWith(cv, "", "", domain.DefaultSkillLevel)
}

// AddSkillWith appends a populated skill, as the add-skill form does.
func AddSkillWith(cv domain.CV, name, category string, level int) (domain.CV, string) {
	id := newID()
	cv.Skills = appendCopy(cv.Skills, domain.Skill{ID: id, Name: name, Category: category, Level: level})
	return cv, id
}

func UpdateSkill(cv domain.CV, id, field string, value any) domain.CV {
	set, ok := skillSetters[field]
	if !ok {
		return cv
	}
	cv.Skills = replaceWhere(cv.Skills, func(s domain.Skill) bool { return s.ID == id },
		func(s domain.Skill) (domain.Skill, bool) { return s, set(&s, value) })
	return cv
}

func RemoveSkill(cv domain.CV, id string) domain.CV {
	cv.Skills = removeWhere(cv.Skills, func(s domain.Skill) bool { return s.ID == id })
	return cv
}

// Normalize fills nil collections, maps an unknown style onto the default
// and gives a fresh id to every record whose id is empty or repeats an
// earlier one in the same collection. Used for imported documents.
func Normalize(cv domain.CV) domain.CV {
	out := domain.NewCV()
	out.Personal = cv.Personal
	out.Style = domain.ParseCVStyle(string(cv.Style))
	out.Experiences = uniqueIDs(cv.Experiences, func(e *domain.Experience) *string { return &e.ID })
	out.Education = uniqueIDs(cv.Education, func(e *domain.Education) *string { return &e.ID })
	out.Skills = uniqueIDs(cv.Skills, func(s *domain.Skill) *string { return &s.ID })
	return out
}

func uniqueIDs[T any](in []T, id func(*T) *string) []T {
	out := make([]T, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		p := id(&v)
		for *p == "" || seen[*p] {
			*p = newID()
		}
		seen[*p] = true
		out = append(out, v)
	}
	return out
}

func appendCopy[T any](in []T, v T) []T {
	out := make([]T, 0, len(in)+1)
	out = append(out, in...)
	return append(out, v)
}

// replaceWhere returns in unchanged when nothing matched or the update was
// rejected, otherwise a fresh slice with the matching element replaced.
func replaceWhere[T any](in []T, match func(T) bool, update func(T) (T, bool)) []T {
	for i, v := range in {
		if !match(v) {
			continue
		}
		nv, ok := update(v)
		if !ok {
			return in
		}
		out := make([]T, len(in))
		copy(out, in)
		out[i] = nv
		return out
	}
	return in
}

func removeWhere[T any](in []T, match func(T) bool) []T {
	idx := -1
	for i, v := range in {
		if match(v) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return in
	}
	out := make([]T, 0, len(in)-1)
	out = append(out, in[:idx]...)
	return append(out, in[idx+1:]...)
}
