package formatters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryFormatter(t *testing.T) {
	f := NewSummaryFormatter()
	label := f.Label("Backend engineer.")
	assert.Equal(t, "Professional Summary: Backend engineer.", label)

	p := f.Prompt(label)
	assert.True(t, strings.HasPrefix(p, "Please enhance this professional summary"))
	assert.True(t, strings.HasSuffix(p, "\n\n"+label))
}

func TestExperienceFormatter(t *testing.T) {
	f := NewExperienceFormatter()
	label := f.Label("Acme", "Engineer", "Built things.")
	assert.Equal(t, "Job Experience at Acme as Engineer: Built things.", label)

	p := f.Prompt(label)
	assert.Contains(t, p, "action verbs")
	assert.True(t, strings.HasSuffix(p, label))
}
