package formatters

import "fmt"

// SummaryFormatter builds the prompt for rewriting a professional summary.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Label wraps the raw summary the way it is sent for enhancement.
func (SummaryFormatter) Label(summary string) string {
	return "Professional Summary: " + summary
}

func (SummaryFormatter) Prompt(content string) string {
	return fmt.Sprintf("Please enhance this professional summary to make it more compelling and professional. "+
		"Keep it concise (2-3 sentences) and focus on key achievements and skills. "+
		"Make sure it sounds natural and authentic:\n\n%s", content)
}
