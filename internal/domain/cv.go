package domain

// PersonalInfo is the singleton header record of a CV. All fields default to
// the empty string.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}

// Experience is one work history entry. StartDate and EndDate are year-month
// strings ("2006-01"); EndDate is ignored for display when Current is set.
type Experience struct {
	ID          string `json:"id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	ID             string `json:"id"`
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate"`
	GPA            string `json:"gpa"`
	Description    string `json:"description"`
}

// Skill levels run from 1 (Beginner) to 5 (Expert). The value is not
// validated; LevelLabel handles anything out of range.
type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level"`
}

// CV is the whole editable document of one session.
type CV struct {
	Personal    PersonalInfo `json:"personalInfo"`
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
	Skills      []Skill      `json:"skills"`
	Style       CVStyle      `json:"style"`
}

// NewCV returns an empty document with the default style.
func NewCV() CV {
	return CV{
		Experiences: []Experience{},
		Education:   []Education{},
		Skills:      []Skill{},
		Style:       StyleProfessional,
	}
}

// IsBlank reports whether nothing identifying has been entered yet: no name
// and no records in any collection.
func (c CV) IsBlank() bool {
	return c.Personal.FullName == "" &&
		len(c.Experiences) == 0 &&
		len(c.Education) == 0 &&
		len(c.Skills) == 0
}

const DefaultSkillLevel = 3

// SkillCategories is the suggestion list offered when adding a skill. The
// category field itself is free text.
var SkillCategories = []string{
	"Programming Languages",
	"Frameworks & Libraries",
	"Tools & Technologies",
	"Databases",
	"Cloud Services",
	"Soft Skills",
	"Languages",
	"Other",
}

var skillLevelLabels = []string{"Beginner", "Basic", "Intermediate", "Advanced", "Expert"}

// LevelLabel returns the display label for a skill level. Out-of-range levels
// are shown as "Intermediate".
func LevelLabel(level int) string {
	if level < 1 || level > len(skillLevelLabels) {
		return skillLevelLabels[DefaultSkillLevel-1]
	}
	return skillLevelLabels[level-1]
}

// SkillLevels lists the levels with their labels in ascending order.
func SkillLevels() []SkillLevel {
	out := make([]SkillLevel, 0, len(skillLevelLabels))
	for i, l := range skillLevelLabels {
		out = append(out, SkillLevel{Level: i + 1, Label: l})
	}
	return out
}

type SkillLevel struct {
	Level int    `json:"level"`
	Label string `json:"label"`
}
