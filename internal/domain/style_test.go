package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCVStyle(t *testing.T) {
	tests := []struct {
		raw  string
		want CVStyle
	}{
		{"professional", StyleProfessional},
		{"modern", StyleModern},
		{"Creative", StyleCreative},
		{" minimal ", StyleMinimal},
		{"", StyleProfessional},
		{"neon", StyleProfessional},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCVStyle(tt.raw))
		})
	}
}

func TestStyleOptions_FixedOrder(t *testing.T) {
	opts := StyleOptions()
	if assert.Len(t, opts, 4) {
		for i, s := range Styles {
			assert.Equal(t, s, opts[i].ID)
			assert.NotEmpty(t, opts[i].Name)
			assert.NotEmpty(t, opts[i].Description)
			assert.NotEmpty(t, opts[i].Swatch)
		}
	}

	opts[0].Name = "changed"
	assert.Equal(t, "Professional", StyleOptions()[0].Name)
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "Beginner", LevelLabel(1))
	assert.Equal(t, "Expert", LevelLabel(5))
	assert.Equal(t, "Intermediate", LevelLabel(0))
	assert.Equal(t, "Intermediate", LevelLabel(9))
	assert.Len(t, SkillLevels(), 5)
}

func TestCV_IsBlank(t *testing.T) {
	cv := NewCV()
	assert.True(t, cv.IsBlank())

	cv.Skills = append(cv.Skills, Skill{ID: "s1", Name: "Go"})
	assert.False(t, cv.IsBlank())

	cv = NewCV()
	cv.Personal.FullName = "Ada"
	assert.False(t, cv.IsBlank())
}
