package http

import (
	"slices"

	"cv-generator/internal/domain"
	"cv-generator/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// recordKind binds one record collection to the generic record routes.
type recordKind struct {
	fields []string
	// add reads the optional request body and returns the mutation to apply.
	add    func(c *fiber.Ctx) (func(domain.CV) (domain.CV, string), error)
	update func(cv domain.CV, id, field string, value any) domain.CV
	remove func(cv domain.CV, id string) domain.CV
	has    func(cv domain.CV, id string) bool
}

func (k recordKind) hasField(f string) bool { return slices.Contains(k.fields, f) }

func plainAdd(fn func(domain.CV) (domain.CV, string)) func(*fiber.Ctx) (func(domain.CV) (domain.CV, string), error) {
	return func(*fiber.Ctx) (func(domain.CV) (domain.CV, string), error) { return fn, nil }
}

func hasID[T any](items []T, id string, idOf func(T) string) bool {
	return slices.ContainsFunc(items, func(it T) bool { return idOf(it) == id })
}

var recordKinds = map[string]recordKind{
	"experiences": {
		fields: store.ExperienceFields(),
		add:    plainAdd(store.AddExperience),
		update: store.UpdateExperience,
		remove: store.RemoveExperience,
		has: func(cv domain.CV, id string) bool {
			return hasID(cv.Experiences, id, func(e domain.Experience) string { return e.ID })
		},
	},
	"education": {
		fields: store.EducationFields(),
		add:    plainAdd(store.AddEducation),
		update: store.UpdateEducation,
		remove: store.RemoveEducation,
		has: func(cv domain.CV, id string) bool {
			return hasID(cv.Education, id, func(e domain.Education) string { return e.ID })
		},
	},
	"skills": {
		fields: store.SkillFields(),
		add:    addSkill,
		update: store.UpdateSkill,
		remove: store.RemoveSkill,
		has: func(cv domain.CV, id string) bool {
			return hasID(cv.Skills, id, func(s domain.Skill) string { return s.ID })
		},
	},
}

func addSkill(c *fiber.Ctx) (func(domain.CV) (domain.CV, string), error) {
	if len(c.Body()) == 0 {
		return store.AddSkill, nil
	}
	var req addSkillReq
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	level := req.Level
	if level == 0 {
		level = domain.DefaultSkillLevel
	}
	return func(cv domain.CV) (domain.CV, string) {
		return store.AddSkillWith(cv, utils.CopyString(req.Name), utils.CopyString(req.Category), level)
	}, nil
}
