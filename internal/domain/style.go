package domain

import "strings"

// CVStyle selects the presentation bundle used by the preview.
type CVStyle string

const (
	StyleProfessional CVStyle = "professional"
	StyleModern       CVStyle = "modern"
	StyleCreative     CVStyle = "creative"
	StyleMinimal      CVStyle = "minimal"
)

// Styles lists every style in selector order.
var Styles = []CVStyle{StyleProfessional, StyleModern, StyleCreative, StyleMinimal}

// Valid reports whether s is one of the four known styles.
func (s CVStyle) Valid() bool {
	switch s {
	case StyleProfessional, StyleModern, StyleCreative, StyleMinimal:
		return true
	}
	return false
}

// ParseCVStyle maps a raw value onto the enum. Unknown values resolve to
// StyleProfessional.
func ParseCVStyle(raw string) CVStyle {
	s := CVStyle(strings.ToLower(strings.TrimSpace(raw)))
	if s.Valid() {
		return s
	}
	return StyleProfessional
}

// StyleOption is one entry of the style selector.
type StyleOption struct {
	ID          CVStyle `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Swatch      string  `json:"swatch"`
}

var styleOptions = []StyleOption{
	{
		ID:          StyleProfessional,
		Name:        "Professional",
		Description: "Clean and formal layout perfect for corporate roles",
		Swatch:      "swatch-blue",
	},
	{
		ID:          StyleModern,
		Name:        "Modern",
		Description: "Contemporary design with subtle colors and clean lines",
		Swatch:      "swatch-purple",
	},
	{
		ID:          StyleCreative,
		Name:        "Creative",
		Description: "Bold and colorful design for creative professionals",
		Swatch:      "swatch-green",
	},
	{
		ID:          StyleMinimal,
		Name:        "Minimal",
		Description: "Simple and clean design focusing on content",
		Swatch:      "swatch-gray",
	},
}

// StyleOptions returns a copy of the fixed selector options.
func StyleOptions() []StyleOption {
	out := make([]StyleOption, len(styleOptions))
	copy(out, styleOptions)
	return out
}
