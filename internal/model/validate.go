// Package model checks CV documents supplied from outside the service
// against the embedded JSON schema.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"cv-generator/internal/domain"
	"cv-generator/templates"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError lists every schema violation of a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := templates.FS.ReadFile(templates.SchemaFile)
		if err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	})
	return schema, schemaErr
}

// ValidateDocument validates raw JSON against cv.schema.json.
func ValidateDocument(raw []byte) error {
	return validate(gojsonschema.NewBytesLoader(raw))
}

func validate(doc gojsonschema.JSONLoader) error {
	s, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	res, err := s.Validate(doc)
	if err != nil {
		return fmt.Errorf("validate document: %w", err)
	}
	if res.Valid() {
		return nil
	}
	verr := &ValidationError{}
	for _, e := range res.Errors() {
		verr.Problems = append(verr.Problems, e.String())
	}
	return verr
}

// DecodeDocument validates raw and decodes it into a CV. Ids and the style
// are left as supplied; callers normalise.
func DecodeDocument(raw []byte) (domain.CV, error) {
	if err := ValidateDocument(raw); err != nil {
		return domain.CV{}, err
	}
	var cv domain.CV
	if err := json.Unmarshal(raw, &cv); err != nil {
		return domain.CV{}, fmt.Errorf("decode document: %w", err)
	}
	return cv, nil
}
