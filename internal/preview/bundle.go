package preview

import "cv-generator/internal/domain"

// Bundle is the set of stylesheet classes one style applies across the
// preview.
type Bundle struct {
	Container       string
	Header          string
	Name            string
	Contact         string
	Links           string
	Section         string
	SectionTitle    string
	Accent          string
	ExperienceEntry string
	EducationEntry  string
	EducationAccent string
}

var bundles = map[domain.CVStyle]Bundle{
	domain.StyleProfessional: {
		Container:       "cv-bg-white",
		Header:          "cv-header cv-header--rule",
		Name:            "cv-name cv-name--bold",
		Contact:         "cv-text-muted",
		Links:           "cv-accent-blue",
		Section:         "cv-section",
		SectionTitle:    "cv-section-title cv-section-title--ruled",
		Accent:          "cv-accent-blue",
		ExperienceEntry: "cv-entry--rule-blue",
		EducationEntry:  "cv-entry--rule-green",
		EducationAccent: "cv-accent-blue",
	},
	domain.StyleModern: {
		Container:       "cv-bg-purple",
		Header:          "cv-header cv-header--band cv-band-purple",
		Name:            "cv-name cv-name--bold",
		Contact:         "cv-text-purple-light",
		Links:           "cv-text-purple-light",
		Section:         "cv-section cv-section--bar cv-bar-purple",
		SectionTitle:    "cv-section-title cv-title-purple",
		Accent:          "cv-accent-purple",
		EducationAccent: "cv-accent-purple",
	},
	domain.StyleCreative: {
		Container:       "cv-bg-green",
		Header:          "cv-header cv-header--band cv-band-green",
		Name:            "cv-name cv-name--bold",
		Contact:         "cv-text-green-light",
		Links:           "cv-text-green-light",
		Section:         "cv-section cv-section--bar cv-bar-green",
		SectionTitle:    "cv-section-title cv-title-green",
		Accent:          "cv-accent-green",
		EducationAccent: "cv-accent-green",
	},
	domain.StyleMinimal: {
		Container:       "cv-bg-white",
		Header:          "cv-header cv-header--rule-strong",
		Name:            "cv-name cv-name--light",
		Contact:         "cv-text-muted",
		Links:           "cv-accent-gray",
		Section:         "cv-section cv-section--airy",
		SectionTitle:    "cv-section-title cv-section-title--caps",
		Accent:          "cv-accent-gray",
		EducationAccent: "cv-accent-gray",
	},
}

// BundleFor looks up the bundle of a style. Values outside the enum get the
// professional bundle.
func BundleFor(style domain.CVStyle) Bundle {
	if b, ok := bundles[style]; ok {
		return b
	}
	return bundles[domain.StyleProfessional]
}
