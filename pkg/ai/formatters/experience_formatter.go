package formatters

import "fmt"

// ExperienceFormatter builds the prompt for rewriting one job description.
type ExperienceFormatter struct{}

func NewExperienceFormatter() *ExperienceFormatter {
	return &ExperienceFormatter{}
}

// Label puts the role in front of the description so the model knows where
// the text comes from.
func (ExperienceFormatter) Label(company, jobTitle, description string) string {
	return fmt.Sprintf("Job Experience at %s as %s: %s", company, jobTitle, description)
}

func (ExperienceFormatter) Prompt(content string) string {
	return fmt.Sprintf("Please enhance this job experience description to make it more professional and impactful. "+
		"Use action verbs, quantify achievements where possible, and highlight key responsibilities. "+
		"Keep it concise but comprehensive:\n\n%s", content)
}
