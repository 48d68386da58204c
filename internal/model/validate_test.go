package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument_Valid(t *testing.T) {
	raw := []byte(`{
		"personalInfo": {"fullName": "Ada Lovelace", "summary": "Analyst"},
		"experiences": [{"jobTitle": "Engineer", "company": "Acme", "current": true}],
		"skills": [{"name": "Go", "category": "Programming Languages", "level": 5}],
		"style": "modern"
	}`)

	cv, err := DecodeDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", cv.Personal.FullName)
	require.Len(t, cv.Experiences, 1)
	assert.True(t, cv.Experiences[0].Current)
	assert.Equal(t, 5, cv.Skills[0].Level)
	assert.Equal(t, "modern", string(cv.Style))
}

func TestDecodeDocument_RejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown top-level": `{"photo": "x.png"}`,
		"level as string":   `{"skills": [{"name": "Go", "level": "5"}]}`,
		"fractional level":  `{"skills": [{"name": "Go", "level": 2.5}]}`,
		"current as string": `{"experiences": [{"current": "yes"}]}`,
		"not an object":     `[]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(raw))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Problems)
		})
	}
}

func TestDecodeDocument_Malformed(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"personalInfo":`))
	assert.Error(t, err)
}
