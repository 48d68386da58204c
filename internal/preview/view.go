// Package preview turns a CV document into the styled preview. Build is a
// pure function of the document; Renderer executes the embedded template.
package preview

import "cv-generator/internal/domain"

// Placeholder text shown for empty required-looking fields.
const (
	PlaceholderName        = "Your Name"
	PlaceholderJobTitle    = "Job Title"
	PlaceholderCompany     = "Company Name"
	PlaceholderDegree      = "Degree"
	PlaceholderInstitution = "Institution"

	EmptyTitle = "Your CV preview will appear here"
	EmptyHint  = "Start filling out the form to see your professional CV"
)

type View struct {
	Style  domain.CVStyle
	Bundle Bundle

	Name     string
	Email    string
	Phone    string
	Location string
	LinkedIn string
	Website  string
	Summary  string

	Experiences []ExperienceView
	Education   []EducationView
	SkillGroups []SkillGroupView

	EmptyState bool
	EmptyTitle string
	EmptyHint  string
}

type ExperienceView struct {
	ID          string
	JobTitle    string
	Company     string
	Location    string
	StartLabel  string
	EndLabel    string
	Description string
}

type EducationView struct {
	ID              string
	Degree          string
	Institution     string
	Location        string
	GraduationLabel string
	GPA             string
	Description     string
}

type SkillGroupView struct {
	Category string
	Skills   []SkillView
}

type SkillView struct {
	ID         string
	Name       string
	Level      int
	LevelLabel string
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

// Build computes the preview view of cv.
func Build(cv domain.CV) View {
	p := cv.Personal
	style := domain.ParseCVStyle(string(cv.Style))
	v := View{
		Style:    style,
		Bundle:   BundleFor(style),
		Name:     orPlaceholder(p.FullName, PlaceholderName),
		Email:    p.Email,
		Phone:    p.Phone,
		Location: p.Location,
		LinkedIn: p.LinkedIn,
		Website:  p.Website,
		Summary:  p.Summary,
	}

	for _, e := range cv.Experiences {
		v.Experiences = append(v.Experiences, ExperienceView{
			ID:          e.ID,
			JobTitle:    orPlaceholder(e.JobTitle, PlaceholderJobTitle),
			Company:     orPlaceholder(e.Company, PlaceholderCompany),
			Location:    e.Location,
			StartLabel:  FormatMonth(e.StartDate),
			EndLabel:    EndLabel(e),
			Description: e.Description,
		})
	}

	for _, e := range cv.Education {
		v.Education = append(v.Education, EducationView{
			ID:              e.ID,
			Degree:          orPlaceholder(e.Degree, PlaceholderDegree),
			Institution:     orPlaceholder(e.Institution, PlaceholderInstitution),
			Location:        e.Location,
			GraduationLabel: FormatMonth(e.GraduationDate),
			GPA:             e.GPA,
			Description:     e.Description,
		})
	}

	for _, g := range GroupSkills(cv.Skills) {
		gv := SkillGroupView{Category: g.Category}
		for _, s := range g.Skills {
			gv.Skills = append(gv.Skills, SkillView{
				ID:         s.ID,
				Name:       s.Name,
				Level:      s.Level,
				LevelLabel: domain.LevelLabel(s.Level),
			})
		}
		v.SkillGroups = append(v.SkillGroups, gv)
	}

	if cv.IsBlank() {
		v.EmptyState = true
		v.EmptyTitle = EmptyTitle
		v.EmptyHint = EmptyHint
	}
	return v
}
